// Package service defines the coordination contract exposed to the transport
// layer. The interface decouples the HTTP server from the concrete Problem
// state machine, enabling dependency injection and mocking in server tests.
package service

//go:generate mockgen -source=work_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"github.com/agbru/bealsearch/internal/coordinator"
	"github.com/agbru/bealsearch/internal/search"
)

// Service is the request/response contract between workers and the
// coordinator: pull a partition, report its results.
type Service interface {
	// GetWork returns the next partition descriptor, or nil when no work is
	// available. "No work" is a normal condition, not an error.
	GetWork() *coordinator.WorkSpec

	// FinishWork marks a partition complete and persists its results on
	// first completion. Duplicate reports are accepted and ignored.
	FinishWork(part uint32, results []search.Quad) error

	// Stats returns the counts of completed and distinct pending partitions.
	Stats() (completed, pending int)
}

// Ensure the coordinator's Problem satisfies the contract.
var _ Service = (*coordinator.Problem)(nil)
