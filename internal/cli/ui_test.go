package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bealsearch/internal/search"
	"github.com/agbru/bealsearch/internal/ui"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{3 * time.Second, "3s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		filled   int
	}{
		{0.0, 10, 0},
		{0.5, 10, 5},
		{1.0, 10, 10},
		{1.5, 10, 10}, // clamped
		{-0.5, 10, 0}, // clamped
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, tt.length)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%v, %d) filled = %d, want %d", tt.progress, tt.length, got, tt.filled)
		}
		if got := len([]rune(bar)); got != tt.length {
			t.Errorf("progressBar(%v, %d) width = %d", tt.progress, tt.length, got)
		}
	}
}

// fakeSpinner records spinner interactions for display tests.
type fakeSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
}

func (f *fakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeSpinner) UpdateSuffix(suffix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suffixes = append(f.suffixes, suffix)
}

func withFakeSpinner(t *testing.T) *fakeSpinner {
	t.Helper()
	fake := &fakeSpinner{}
	orig := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = orig })
	return fake
}

func TestDisplayProgress(t *testing.T) {
	fake := withFakeSpinner(t)

	var buf bytes.Buffer
	updates := make(chan ProgressUpdate)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, updates, &buf)

	updates <- ProgressUpdate{Fraction: 0.25, Completed: 50, Pending: 3}
	// Let at least one ticker refresh observe the update.
	time.Sleep(2 * ProgressRefreshRate)
	updates <- ProgressUpdate{Fraction: 1.0, Completed: 200}
	close(updates)
	wg.Wait()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if !fake.started || !fake.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both true", fake.started, fake.stopped)
	}
	found := false
	for _, s := range fake.suffixes {
		if strings.Contains(s, "25.00%") && strings.Contains(s, "pending: 3") {
			found = true
		}
	}
	if !found {
		t.Errorf("no refresh reflected the 25%% snapshot: %q", fake.suffixes)
	}

	final := buf.String()
	if !strings.Contains(final, "100.00%") || !strings.Contains(final, "completed: 200") {
		t.Errorf("final line = %q", final)
	}
}

func TestShowTableBuild(t *testing.T) {
	fake := withFakeSpinner(t)

	var buf bytes.Buffer
	stop := ShowTableBuild(&buf, 300, 300)
	stop()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if !fake.started || !fake.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both true", fake.started, fake.stopped)
	}
	if len(fake.suffixes) == 0 || !strings.Contains(fake.suffixes[0], "300") {
		t.Errorf("suffix did not mention the bounds: %q", fake.suffixes)
	}
}

func TestFormatQuad(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	if got := FormatQuad(search.Quad{A: 7, X: 3, B: 2, Y: 4}); got != "7^3 + 2^4" {
		t.Errorf("FormatQuad() = %q", got)
	}
}

func TestDisplaySummary(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })

	var buf bytes.Buffer
	DisplaySummary(&buf, 300, 2, 90*time.Second)

	out := buf.String()
	for _, want := range []string{"Partitions completed : 300", "Candidates persisted : 2", "1m30s"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in %q", want, out)
		}
	}
}
