package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with cli.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleRunError formats and prints error messages for a failed coordinator
// or worker run. It distinguishes between error classes (timeout,
// cancellation, protocol violation, configuration, generic) to provide the
// user with specific feedback and to select the process exit code.
//
// Parameters:
//   - err: The error that occurred (nil yields ExitSuccess).
//   - out: The io.Writer to which the error message will be written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached.\n")
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sStatus: Canceled.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	}
	if IsProtocolError(err) {
		fmt.Fprintf(out, "Status: Failure (Protocol). Coordinator/worker consistency violated: %v\n", err)
		return ExitErrorProtocol
	}
	var ce ConfigError
	if errors.As(err, &ce) {
		fmt.Fprintf(out, "Status: Failure (Configuration). %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
