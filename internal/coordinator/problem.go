package coordinator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/bealsearch/internal/logging"
	"github.com/agbru/bealsearch/internal/search"
)

var (
	partitionsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beal_partitions_dispatched_total",
			Help: "Partitions handed to workers, fresh from the generator or recycled",
		},
		[]string{"source"},
	)
	partitionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beal_partitions_completed_total",
			Help: "Partitions confirmed complete (first completion only)",
		},
	)
	duplicateReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beal_duplicate_reports_total",
			Help: "Completion reports for already-completed partitions",
		},
	)
	candidatesPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beal_candidates_persisted_total",
			Help: "Candidate quadruples appended to the result sink",
		},
	)
	generatorProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "beal_generator_progress",
			Help: "Fraction of the fresh-partition range already dispatched",
		},
	)
)

// WorkSpec is the partition descriptor handed to a worker. Besides the
// partition value itself, it carries the search parameters the worker must
// build (and keep) its residue tables from.
type WorkSpec struct {
	MaxBase uint32    `json:"max_base"`
	MaxPow  uint32    `json:"max_pow"`
	Primes  [2]uint32 `json:"primes"`
	Part    uint32    `json:"part"`
}

// Config holds the parameters of a search problem.
type Config struct {
	// MaxBase and MaxPow bound the search space.
	MaxBase uint32
	MaxPow  uint32
	// Primes is the modulus pair workers build their tables from.
	Primes [2]uint32
	// Start is the first fresh partition the generator produces. Partitions
	// below Start are treated as a known-clear prefix.
	Start uint32
}

// Problem manages one Beal counter-example search for the lifetime of the
// coordinator process. All state — the generator, the queue, the sink — is
// owned by the Problem and guarded by one lock; GetWork and FinishWork are
// each atomic with respect to each other. Operations are brief and CPU-cheap;
// the only I/O under the lock is the synchronous append-and-flush of
// confirmed results.
type Problem struct {
	mu         sync.Mutex
	cfg        Config
	gen        *WorkGenerator
	queue      *WorkQueue
	sink       *ResultSink
	logger     logging.Logger
	candidates int
}

// NewProblem creates a Problem for the given configuration. sink may be nil,
// in which case confirmed candidates are only logged. logger may be nil for
// the default structured logger.
func NewProblem(cfg Config, sink *ResultSink, logger logging.Logger) *Problem {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Problem{
		cfg:    cfg,
		gen:    NewWorkGenerator(cfg.Start, cfg.MaxBase),
		queue:  NewWorkQueue(),
		sink:   sink,
		logger: logger,
	}
}

// GetWork returns the next partition descriptor, or nil when no work is
// available. Fresh partitions from the generator are preferred; each is also
// recorded in the queue so it can be redistributed if its worker never
// reports back. Once the generator is exhausted, not-yet-completed
// partitions are recycled oldest-first.
func (p *Problem) GetWork() *WorkSpec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if a, ok := p.gen.Next(); ok {
		p.queue.Add(a)
		partitionsDispatched.WithLabelValues("fresh").Inc()
		generatorProgress.Set(p.gen.Progress())
		return p.spec(a)
	}
	if a, ok := p.queue.Next(); ok {
		partitionsDispatched.WithLabelValues("recycled").Inc()
		return p.spec(a)
	}
	return nil
}

func (p *Problem) spec(a uint32) *WorkSpec {
	return &WorkSpec{
		MaxBase: p.cfg.MaxBase,
		MaxPow:  p.cfg.MaxPow,
		Primes:  p.cfg.Primes,
		Part:    a,
	}
}

// FinishWork marks the partition complete and, on the first completion only,
// persists its result quadruples. Duplicate reports are an expected
// consequence of redistribution: they are counted, logged at debug level and
// otherwise ignored.
func (p *Problem) FinishWork(part uint32, results []search.Quad) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if duplicate := p.queue.Complete(part); duplicate {
		duplicateReports.Inc()
		p.logger.Debug("duplicate completion ignored", logging.Uint32("partition", part))
		return nil
	}
	partitionsCompleted.Inc()

	if len(results) > 0 {
		p.logger.Info("candidates confirmed",
			logging.Uint32("partition", part),
			logging.Int("count", len(results)))
	}
	if p.sink != nil {
		if err := p.sink.Append(results); err != nil {
			return err
		}
	} else {
		for _, q := range results {
			p.logger.Info("candidate", logging.String("quad", q.String()))
		}
	}
	p.candidates += len(results)
	candidatesPersisted.Add(float64(len(results)))
	return nil
}

// Candidates returns the number of candidate quadruples persisted so far.
func (p *Problem) Candidates() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.candidates
}

// Stats returns the number of completed and distinct still-pending
// partitions.
func (p *Problem) Stats() (completed, pending int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Stats()
}

// Progress returns the fraction of the fresh-partition range already
// dispatched, 0 to 1.
func (p *Problem) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.Progress()
}

// StartMonitor launches the background reporting activity: every interval it
// takes the coordination lock and logs generator progress and queue counts.
// It runs for the life of the process and is not cancellable; process
// termination is the only teardown.
func (p *Problem) StartMonitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			p.reportProgress()
		}
	}()
}

func (p *Problem) reportProgress() {
	p.mu.Lock()
	defer p.mu.Unlock()
	completed, pending := p.queue.Stats()
	p.logger.Info("search progress",
		logging.Float64("generated", p.gen.Progress()),
		logging.Int("completed", completed),
		logging.Int("pending", pending))
}
