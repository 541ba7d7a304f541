package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	apperrors "github.com/agbru/bealsearch/internal/errors"
	"github.com/agbru/bealsearch/internal/modmath"
	"github.com/agbru/bealsearch/internal/parallel"
	"github.com/agbru/bealsearch/internal/residue"
)

// ErrResultCapacity is returned when a partition produces more candidates
// than the configured capacity. This is a fatal sizing error: the capacity
// must be chosen generously relative to the expected rarity of
// double-modulus matches, and results are never silently truncated.
var ErrResultCapacity = errors.New("search: partition result capacity exceeded")

// DefaultMaxResults is the default per-partition candidate capacity.
// Double-modulus collisions are ~2^-64 events per pair, so even a handful of
// candidates per partition signals something unusual; 4096 is generous.
const DefaultMaxResults = 4096

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beal_search_partitions_total",
			Help: "The total number of partition searches processed",
		},
		[]string{"status"},
	)
	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "beal_search_duration_seconds",
			Help: "The duration of partition searches in seconds",
		},
	)
	candidatesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beal_search_candidates_total",
			Help: "The total number of candidate quadruples emitted",
		},
	)
	tableBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "beal_table_build_seconds",
			Help: "Wall time spent building the two power-residue tables",
		},
	)
)

// Config holds the parameters an Engine is built from. The parameters are
// fixed for the lifetime of the engine; a worker that observes different
// parameters from the coordinator must tear down rather than reuse the
// engine.
type Config struct {
	// MaxBase is the largest base searched, for both the (a, b) pair and the
	// candidate right-hand side c.
	MaxBase uint32
	// MaxPow is the largest exponent searched.
	MaxPow uint32
	// Primes is the modulus pair keying the two residue tables. Two
	// independent ~32-bit moduli push the per-pair false-positive rate from
	// ~2^-32 to ~2^-64 without widening the tables.
	Primes [2]uint32
	// MaxResults caps the candidates a single partition may emit.
	// Zero selects DefaultMaxResults.
	MaxResults int
}

// Engine drives the enumerator and the two power-residue tables to emit
// candidate quadruples for a partition. Built once per worker process; safe
// for concurrent SearchPartition calls because the tables are read-only
// after construction.
type Engine struct {
	cfg        Config
	maxResults int
	t1, t2     *residue.Table
}

// NewEngine builds the two power-residue tables and returns a ready engine.
// Table construction dominates worker startup; the two tables are built
// concurrently.
//
// Parameters:
//   - cfg: The engine parameters (bounds, modulus pair, result capacity).
//
// Returns:
//   - *Engine: The ready engine.
//   - error: An error if the parameters are invalid.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Primes[0] == cfg.Primes[1] {
		return nil, apperrors.NewValidationError("primes", "modulus pair must be distinct", cfg.Primes)
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	e := &Engine{cfg: cfg, maxResults: maxResults}

	start := time.Now()
	var ec parallel.ErrorCollector
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t, err := residue.New(cfg.MaxBase, cfg.MaxPow, cfg.Primes[0])
		e.t1 = t
		ec.SetError(err)
	}()
	go func() {
		defer wg.Done()
		t, err := residue.New(cfg.MaxBase, cfg.MaxPow, cfg.Primes[1])
		e.t2 = t
		ec.SetError(err)
	}()
	wg.Wait()
	if err := ec.Err(); err != nil {
		return nil, err
	}

	buildSeconds := time.Since(start).Seconds()
	tableBuildDuration.Set(buildSeconds)
	log.Debug().
		Uint32("max_base", cfg.MaxBase).
		Uint32("max_pow", cfg.MaxPow).
		Uint32("prime1", cfg.Primes[0]).
		Uint32("prime2", cfg.Primes[1]).
		Float64("duration", buildSeconds).
		Msg("residue tables built")
	return e, nil
}

// MaxBase returns the engine's base bound.
func (e *Engine) MaxBase() uint32 { return e.cfg.MaxBase }

// MaxPow returns the engine's exponent bound.
func (e *Engine) MaxPow() uint32 { return e.cfg.MaxPow }

// Primes returns the engine's modulus pair.
func (e *Engine) Primes() [2]uint32 { return e.cfg.Primes }

// SearchPartition runs the candidate filter over every valid (b, x, y) for
// the fixed base a and returns the (possibly empty) list of quadruples whose
// modular sum collides in both tables. The emitted quadruples are
// probabilistic candidates, not verified counter-examples.
//
// The residues a^x mod m and b^y mod m are table lookups: both bases are
// within the table's range, so the sum (a^x + b^y) mod m reduces to one
// modular addition of two precomputed entries per modulus.
//
// Parameters:
//   - ctx: The context for cancellation; checked periodically in the loop.
//   - a: The partition base, must be in [1, MaxBase].
//
// Returns:
//   - []Quad: The candidate quadruples for this partition.
//   - error: ErrResultCapacity on capacity overflow, a validation error for
//     an out-of-range partition, or the context error on cancellation.
func (e *Engine) SearchPartition(ctx context.Context, a uint32) (results []Quad, err error) {
	tracer := otel.Tracer("bealsearch")
	ctx, span := tracer.Start(ctx, "SearchPartition")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		searchesTotal.WithLabelValues(status).Inc()
		searchDuration.Observe(duration)

		log.Debug().
			Uint32("partition", a).
			Int("candidates", len(results)).
			Float64("duration", duration).
			Str("status", status).
			Msg("partition searched")
	}()

	if a < 1 || a > e.cfg.MaxBase {
		return nil, apperrors.NewValidationError("partition", "outside the configured base range", a)
	}

	m1, m2 := e.cfg.Primes[0], e.cfg.Primes[1]
	enum := NewPartitionEnumerator(e.cfg.MaxPow, a)
	steps := 0
	for {
		q, ok := enum.Next()
		if !ok {
			break
		}
		steps++
		if steps&0xFFF == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
		}

		s1 := modmath.AddMod(e.t1.Get(q.A, q.X), e.t1.Get(q.B, q.Y), m1)
		if !e.t1.Contains(s1) {
			continue
		}
		s2 := modmath.AddMod(e.t2.Get(q.A, q.X), e.t2.Get(q.B, q.Y), m2)
		if !e.t2.Contains(s2) {
			continue
		}

		if len(results) >= e.maxResults {
			return nil, ErrResultCapacity
		}
		results = append(results, q)
		candidatesFound.Inc()
	}
	return results, nil
}
