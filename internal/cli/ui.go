// The cli package provides the terminal presentation layer for the search
// binaries. It handles the asynchronous display of dispatch progress on the
// coordinator, the table-build spinner on the worker, and the formatting of
// candidate quadruples and summaries.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bealsearch/internal/search"
	"github.com/agbru/bealsearch/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.GetCurrentTheme().Info }

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples the display functions from a specific spinner implementation,
// facilitating easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressUpdate carries a snapshot of the coordinator's dispatch progress.
type ProgressUpdate struct {
	// Fraction is the generator's progress through the partition range, 0 to 1.
	Fraction float64
	// Completed is the number of partitions confirmed complete.
	Completed int
	// Pending is the number of distinct dispatched-but-unconfirmed partitions.
	Pending int
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of the dispatch progress.
// It is designed to run in a dedicated goroutine: it consumes snapshots from
// the channel, refreshes the spinner periodically, and prints a final
// persistent line when the channel closes.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - updates: The channel receiving progress snapshots.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer) {
	defer wg.Done()

	var last ProgressUpdate
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				// Stop the spinner first to free the line
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}
				bar := progressBar(1.0, ProgressBarWidth)
				fmt.Fprintf(out, "Dispatched: %6.2f%% [%s] completed: %d\n", 100.0, bar, last.Completed)
				return
			}
			last = update
		case <-ticker.C:
			bar := progressBar(last.Fraction, ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" Dispatched: %6.2f%% [%s] completed: %d, pending: %d",
				last.Fraction*100, bar, last.Completed, last.Pending))
		}
	}
}

// ShowTableBuild displays a spinner while a worker builds its residue tables.
// It returns a stop function to call once the build finishes.
//
// Parameters:
//   - out: The io.Writer the spinner renders to.
//   - maxBase, maxPow: The table bounds, shown in the spinner message.
//
// Returns:
//   - func(): Stops the spinner.
func ShowTableBuild(out io.Writer, maxBase, maxPow uint32) func() {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" Building residue tables (%d bases × %d exponents)...", maxBase, maxPow))
	s.Start()
	return s.Stop
}

// FormatQuad renders a candidate quadruple as a colored equation fragment,
// e.g. "7^3 + 2^4".
func FormatQuad(q search.Quad) string {
	return fmt.Sprintf("%s%d^%d + %d^%d%s", ColorGreen(), q.A, q.X, q.B, q.Y, ColorReset())
}

// DisplaySummary prints the closing summary for a run.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - completed: The number of partitions confirmed complete.
//   - candidates: The number of candidate quadruples persisted.
//   - duration: The total run duration.
func DisplaySummary(out io.Writer, completed, candidates int, duration time.Duration) {
	fmt.Fprintf(out, "\n%s--- Run summary ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Partitions completed : %s%d%s\n", ColorCyan(), completed, ColorReset())
	fmt.Fprintf(out, "Candidates persisted : %s%d%s\n", ColorCyan(), candidates, ColorReset())
	fmt.Fprintf(out, "Total time           : %s%s%s\n", ColorGreen(), FormatExecutionDuration(duration), ColorReset())
}
