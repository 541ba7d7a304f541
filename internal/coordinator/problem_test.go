package coordinator

import (
	"bytes"
	"io"
	"testing"

	"github.com/agbru/bealsearch/internal/logging"
	"github.com/agbru/bealsearch/internal/search"
)

func testProblem(t *testing.T, cfg Config, out io.Writer) *Problem {
	t.Helper()
	var sink *ResultSink
	if out != nil {
		s, err := NewResultSink(out, cfg.MaxBase, cfg.MaxPow)
		if err != nil {
			t.Fatalf("NewResultSink: %v", err)
		}
		sink = s
	}
	return NewProblem(cfg, sink, logging.NewLogger(io.Discard, "test"))
}

// TestGetWorkPrefersFreshPartitions is the coordinator scenario: while the
// generator has fresh work, sequential GetWork calls never repeat.
func TestGetWorkPrefersFreshPartitions(t *testing.T) {
	t.Parallel()
	p := testProblem(t, Config{MaxBase: 5, MaxPow: 10, Primes: [2]uint32{997, 1009}, Start: 1}, nil)

	for want := uint32(1); want <= 3; want++ {
		spec := p.GetWork()
		if spec == nil {
			t.Fatalf("GetWork() = nil, want partition %d", want)
		}
		if spec.Part != want {
			t.Fatalf("GetWork().Part = %d, want %d", spec.Part, want)
		}
		if spec.MaxBase != 5 || spec.MaxPow != 10 || spec.Primes != [2]uint32{997, 1009} {
			t.Fatalf("work spec carries wrong parameters: %+v", spec)
		}
	}
}

// TestGetWorkRecyclesAfterExhaustion: once the generator is exhausted,
// GetWork serves the oldest not-yet-completed partition again.
func TestGetWorkRecyclesAfterExhaustion(t *testing.T) {
	t.Parallel()
	p := testProblem(t, Config{MaxBase: 3, MaxPow: 10, Primes: [2]uint32{997, 1009}, Start: 1}, nil)

	for want := uint32(1); want <= 3; want++ {
		if spec := p.GetWork(); spec == nil || spec.Part != want {
			t.Fatalf("fresh GetWork() = %+v, want partition %d", spec, want)
		}
	}

	// Generator exhausted; the oldest dispatched-but-unconfirmed partition
	// comes back around.
	spec := p.GetWork()
	if spec == nil || spec.Part != 1 {
		t.Fatalf("recycled GetWork() = %+v, want partition 1", spec)
	}
}

func TestGetWorkNoneWhenAllComplete(t *testing.T) {
	t.Parallel()
	p := testProblem(t, Config{MaxBase: 2, MaxPow: 10, Primes: [2]uint32{997, 1009}, Start: 1}, nil)

	for i := 0; i < 2; i++ {
		spec := p.GetWork()
		if spec == nil {
			t.Fatal("GetWork() = nil while fresh work remained")
		}
		if err := p.FinishWork(spec.Part, nil); err != nil {
			t.Fatalf("FinishWork: %v", err)
		}
	}
	if spec := p.GetWork(); spec != nil {
		t.Errorf("GetWork() = %+v after every partition completed, want nil", spec)
	}
}

func TestFinishWorkPersistsOnce(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := testProblem(t, Config{MaxBase: 5, MaxPow: 10, Primes: [2]uint32{997, 1009}, Start: 1}, &buf)

	results := []search.Quad{{A: 2, X: 3, B: 1, Y: 4}}
	if err := p.FinishWork(2, results); err != nil {
		t.Fatalf("FinishWork: %v", err)
	}
	// A second worker reports the same partition; its results are dropped.
	if err := p.FinishWork(2, results); err != nil {
		t.Fatalf("duplicate FinishWork: %v", err)
	}

	want := "5 10\n2 3 1 4\n"
	if got := buf.String(); got != want {
		t.Errorf("sink contents = %q, want %q", got, want)
	}
}

func TestProblemStats(t *testing.T) {
	t.Parallel()
	p := testProblem(t, Config{MaxBase: 4, MaxPow: 10, Primes: [2]uint32{997, 1009}, Start: 1}, nil)

	p.GetWork() // 1
	p.GetWork() // 2
	p.FinishWork(1, nil)

	completed, pending := p.Stats()
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}
	if pending != 1 {
		t.Errorf("pending = %d, want 1 (partition 2)", pending)
	}
}

func TestGetWorkStartSkipsKnownClearPrefix(t *testing.T) {
	t.Parallel()
	p := testProblem(t, Config{MaxBase: 300, MaxPow: 300, Primes: [2]uint32{997, 1009}, Start: 280}, nil)
	spec := p.GetWork()
	if spec == nil || spec.Part != 280 {
		t.Fatalf("GetWork() = %+v, want partition 280", spec)
	}
}
