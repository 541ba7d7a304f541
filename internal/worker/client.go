// Package worker implements the search worker: an HTTP client that pulls
// base partitions from the coordinator, a pool of goroutines that run the
// candidate filter over them, and the completion reporting loop.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agbru/bealsearch/internal/coordinator"
	apperrors "github.com/agbru/bealsearch/internal/errors"
	"github.com/agbru/bealsearch/internal/search"
)

// Client talks to the coordinator's work distribution API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a coordinator client for the given base URL
// (e.g. "http://localhost:8000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// finishPayload mirrors the coordinator's finish report schema.
type finishPayload struct {
	Part    uint32      `json:"part"`
	Results [][4]uint32 `json:"results"`
}

// GetWork requests the next partition from the coordinator.
//
// Parameters:
//   - ctx: The context for cancellation and timeout.
//
// Returns:
//   - *coordinator.WorkSpec: The next partition, or nil when the coordinator
//     has none (HTTP 204).
//   - error: A transport or protocol error.
func (c *Client) GetWork(ctx context.Context) (*coordinator.WorkSpec, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/work", http.NoBody)
	if err != nil {
		return nil, apperrors.WrapError(err, "building work request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.WrapError(err, "requesting work")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil, nil
	case http.StatusOK:
		var spec coordinator.WorkSpec
		if err := json.NewDecoder(resp.Body).Decode(&spec); err != nil {
			return nil, apperrors.NewProtocolError("undecodable work spec: %v", err)
		}
		return &spec, nil
	default:
		return nil, apperrors.NewProtocolError("unexpected status %d from /work", resp.StatusCode)
	}
}

// FinishWork reports the results for a completed partition.
//
// Parameters:
//   - ctx: The context for cancellation and timeout.
//   - part: The completed partition.
//   - results: The candidate quadruples found, possibly empty.
//
// Returns:
//   - error: A transport or protocol error, nil on acknowledgment.
func (c *Client) FinishWork(ctx context.Context, part uint32, results []search.Quad) error {
	payload := finishPayload{Part: part, Results: make([][4]uint32, len(results))}
	for i, q := range results {
		payload.Results[i] = [4]uint32{q.A, q.X, q.B, q.Y}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.WrapError(err, "encoding finish report")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/finish", bytes.NewReader(body))
	if err != nil {
		return apperrors.WrapError(err, "building finish request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.WrapError(err, "reporting finished work")
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewProtocolError("unexpected status %d from /finish", resp.StatusCode)
	}
	return nil
}
