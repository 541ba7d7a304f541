package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bealsearch/internal/coordinator"
	apperrors "github.com/agbru/bealsearch/internal/errors"
	"github.com/agbru/bealsearch/internal/logging"
	"github.com/agbru/bealsearch/internal/search"
	"github.com/agbru/bealsearch/internal/verify"
)

// Pool runs concurrent search loops against a single coordinator. All
// goroutines share one engine: the residue tables are read-only after
// construction, and building them per goroutine would multiply the dominant
// startup cost by the goroutine count.
//
// The engine is built lazily from the first work unit received. The
// coordinator's parameters are fixed for the lifetime of the pool afterwards;
// a work unit carrying different parameters is a protocol violation and
// stops the pool.
type Pool struct {
	client  *Client
	logger  logging.Logger
	backoff time.Duration

	maxResults   int
	verifyHits   bool
	onTableBuild func(maxBase, maxPow uint32) func()

	mu     sync.Mutex
	engine *search.Engine
}

// PoolConfig holds the tunables for a worker pool.
type PoolConfig struct {
	// Backoff is how long a loop sleeps when the coordinator has no work or
	// a transient transport error occurs.
	Backoff time.Duration
	// MaxResults caps the candidates a single partition may yield.
	MaxResults int
	// VerifyCandidates enables exact re-checking of candidates before they
	// are reported.
	VerifyCandidates bool
	// OnTableBuild, if set, is called when the residue table build starts.
	// The returned function is called when the build finishes. Used to hook
	// up terminal progress display without coupling the pool to the CLI.
	OnTableBuild func(maxBase, maxPow uint32) func()
}

// NewPool creates a worker pool talking to the given coordinator client.
//
// Parameters:
//   - client: The coordinator client.
//   - cfg: The pool tunables.
//   - logger: The logger for progress and diagnostics (nil for a default).
//
// Returns:
//   - *Pool: The ready pool. The engine is built on first work receipt.
func NewPool(client *Client, cfg PoolConfig, logger logging.Logger) *Pool {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 10 * time.Second
	}
	return &Pool{
		client:       client,
		logger:       logger,
		backoff:      cfg.Backoff,
		maxResults:   cfg.MaxResults,
		verifyHits:   cfg.VerifyCandidates,
		onTableBuild: cfg.OnTableBuild,
	}
}

// Run starts n concurrent search loops and blocks until the context is
// canceled or a loop fails with a fatal error. The first fatal error cancels
// the remaining loops.
//
// Parameters:
//   - ctx: The context governing the pool's lifetime.
//   - n: The number of concurrent loops, at least 1.
//
// Returns:
//   - error: The first fatal error, or the context error on cancellation.
func (p *Pool) Run(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		id := i
		g.Go(func() error {
			return p.runLoop(ctx, id)
		})
	}
	return g.Wait()
}

// runLoop is the body of one search goroutine: pull, search, report, repeat.
func (p *Pool) runLoop(ctx context.Context, id int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		spec, err := p.client.GetWork(ctx)
		if err != nil {
			if apperrors.IsContextError(err) || apperrors.IsProtocolError(err) {
				return err
			}
			// Transient transport failure; the coordinator may be
			// restarting.
			p.logger.Error("work request failed", err)
			if err := p.sleep(ctx); err != nil {
				return err
			}
			continue
		}
		if spec == nil {
			p.logger.Debug("no work available", logging.Int("loop", id))
			if err := p.sleep(ctx); err != nil {
				return err
			}
			continue
		}

		engine, err := p.ensureEngine(spec)
		if err != nil {
			return err
		}

		results, err := engine.SearchPartition(ctx, spec.Part)
		if err != nil {
			if errors.Is(err, search.ErrResultCapacity) {
				return apperrors.WrapError(err, "partition %d", spec.Part)
			}
			if apperrors.IsContextError(err) {
				return err
			}
			return apperrors.SearchError{Cause: err}
		}

		p.inspectCandidates(spec, results)

		if err := p.client.FinishWork(ctx, spec.Part, results); err != nil {
			if apperrors.IsContextError(err) || apperrors.IsProtocolError(err) {
				return err
			}
			// The report is lost; the coordinator will redistribute the
			// partition, and the duplicate completion is harmless.
			p.logger.Error("finish report failed", err,
				logging.Uint32("partition", spec.Part))
			if err := p.sleep(ctx); err != nil {
				return err
			}
		}
	}
}

// ensureEngine returns the shared engine, building it from the first work
// unit. Subsequent work units must carry identical parameters.
func (p *Pool) ensureEngine(spec *coordinator.WorkSpec) (*search.Engine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine == nil {
		p.logger.Info("building residue tables",
			logging.Uint32("max_base", spec.MaxBase),
			logging.Uint32("max_pow", spec.MaxPow))
		if p.onTableBuild != nil {
			done := p.onTableBuild(spec.MaxBase, spec.MaxPow)
			defer done()
		}
		engine, err := search.NewEngine(search.Config{
			MaxBase:    spec.MaxBase,
			MaxPow:     spec.MaxPow,
			Primes:     spec.Primes,
			MaxResults: p.maxResults,
		})
		if err != nil {
			return nil, err
		}
		p.engine = engine
		return engine, nil
	}

	if p.engine.MaxBase() != spec.MaxBase ||
		p.engine.MaxPow() != spec.MaxPow ||
		p.engine.Primes() != spec.Primes {
		return nil, apperrors.NewProtocolError(
			"coordinator parameters changed mid-run: had (%d, %d, %v), got (%d, %d, %v)",
			p.engine.MaxBase(), p.engine.MaxPow(), p.engine.Primes(),
			spec.MaxBase, spec.MaxPow, spec.Primes)
	}
	return p.engine, nil
}

// inspectCandidates logs every candidate and, when enabled, re-checks each
// one with exact arithmetic. A confirmed identity is logged loudly; it still
// travels to the coordinator like any other candidate.
func (p *Pool) inspectCandidates(spec *coordinator.WorkSpec, results []search.Quad) {
	for _, q := range results {
		p.logger.Info("candidate found",
			logging.Uint32("a", q.A), logging.Uint32("x", q.X),
			logging.Uint32("b", q.B), logging.Uint32("y", q.Y))
		if !p.verifyHits {
			continue
		}
		if conf, ok := verify.Verify(q.A, q.X, q.B, q.Y, spec.MaxPow); ok {
			p.logger.Info("candidate CONFIRMED by exact arithmetic",
				logging.Uint32("a", q.A), logging.Uint32("x", q.X),
				logging.Uint32("b", q.B), logging.Uint32("y", q.Y),
				logging.String("c", conf.C.String()), logging.Uint32("z", conf.Z))
		} else {
			p.logger.Info("candidate rejected by exact arithmetic",
				logging.Uint32("a", q.A), logging.Uint32("x", q.X),
				logging.Uint32("b", q.B), logging.Uint32("y", q.Y))
		}
	}
}

// sleep waits for the backoff interval or until the context ends.
func (p *Pool) sleep(ctx context.Context) error {
	timer := time.NewTimer(p.backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
