// Package app provides the core application structure for the coordinator
// and worker binaries. It handles configuration loading, lifecycle,
// wiring of the components, and version management.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bealsearch/internal/cli"
	"github.com/agbru/bealsearch/internal/config"
	"github.com/agbru/bealsearch/internal/coordinator"
	apperrors "github.com/agbru/bealsearch/internal/errors"
	"github.com/agbru/bealsearch/internal/logging"
	"github.com/agbru/bealsearch/internal/server"
	"github.com/agbru/bealsearch/internal/ui"
	"github.com/agbru/bealsearch/internal/worker"
)

// Application represents one search binary instance, coordinator or worker.
// It encapsulates the parsed configuration and the error output stream.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// NewCoordinator creates an Application from the coordinator's command line.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func NewCoordinator(args []string, errWriter io.Writer) (*Application, error) {
	programName, cmdArgs := splitArgs(args, "coordinator")
	cfg, err := config.ParseCoordinatorConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// NewWorker creates an Application from the worker's command line.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func NewWorker(args []string, errWriter io.Writer) (*Application, error) {
	programName, cmdArgs := splitArgs(args, "worker")
	cfg, err := config.ParseWorkerConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

func splitArgs(args []string, fallbackName string) (string, []string) {
	if len(args) > 0 {
		return args[0], args[1:]
	}
	return fallbackName, nil
}

// RunCoordinator starts the coordinator: it opens the result sink, builds the
// search problem, and serves the work distribution API until a termination
// signal arrives.
//
// Parameters:
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) RunCoordinator(out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := logging.NewLogger(a.ErrWriter, "coordinator")

	start := time.Now()
	sink, err := coordinator.OpenResultFile(a.Config.OutputFile, a.Config.MaxBase, a.Config.MaxPow)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Cannot open result file: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			fmt.Fprintf(a.ErrWriter, "Error closing result file: %v\n", cerr)
		}
	}()

	problem := coordinator.NewProblem(a.Config.ToCoordinatorConfig(), sink, logger)
	problem.StartMonitor(a.Config.ReportInterval)

	stopProgress := a.startProgressDisplay(problem, out)

	srv := server.NewServer(problem, a.Config, server.WithLogger(logger))
	err = srv.Start()

	if stopProgress != nil {
		stopProgress()
	}

	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, ui.Colors{})
	}

	completed, _ := problem.Stats()
	if !a.Config.Quiet {
		cli.DisplaySummary(out, completed, problem.Candidates(), time.Since(start))
	}
	return apperrors.ExitSuccess
}

// startProgressDisplay launches the dispatch progress display unless quiet
// mode is on. It returns a stop function that tears the display down, or nil.
func (a *Application) startProgressDisplay(problem *coordinator.Problem, out io.Writer) func() {
	if a.Config.Quiet {
		return nil
	}

	var wg sync.WaitGroup
	updates := make(chan cli.ProgressUpdate, 1)
	wg.Add(1)
	go cli.DisplayProgress(&wg, updates, out)

	done := make(chan struct{})
	feederDone := make(chan struct{})
	go func() {
		defer close(feederDone)
		ticker := time.NewTicker(cli.ProgressRefreshRate)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			completed, pending := problem.Stats()
			snapshot := cli.ProgressUpdate{
				Fraction:  problem.Progress(),
				Completed: completed,
				Pending:   pending,
			}
			// Drop the snapshot rather than block if the display lags.
			select {
			case updates <- snapshot:
			default:
			}
		}
	}()

	return func() {
		close(done)
		<-feederDone
		close(updates)
		wg.Wait()
	}
}

// RunWorker starts the worker pool and blocks until the context is canceled
// or a fatal error occurs.
//
// Parameters:
//   - ctx: The context governing the worker's lifetime.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) RunWorker(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := logging.NewLogger(a.ErrWriter, "worker")

	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	poolCfg := worker.PoolConfig{
		Backoff:          a.Config.Backoff,
		MaxResults:       a.Config.MaxResults,
		VerifyCandidates: a.Config.VerifyCandidates,
	}
	if !a.Config.Quiet {
		poolCfg.OnTableBuild = func(maxBase, maxPow uint32) func() {
			return cli.ShowTableBuild(out, maxBase, maxPow)
		}
	}

	pool := worker.NewPool(worker.NewClient(a.Config.ServerURL), poolCfg, logger)

	logger.Info("worker starting",
		logging.String("coordinator", a.Config.ServerURL),
		logging.Int("loops", a.Config.Workers))

	err := pool.Run(ctx, a.Config.Workers)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Signal-driven shutdown is the normal way a worker ends.
		logger.Info("worker stopped")
	}
	return apperrors.HandleRunError(err, a.ErrWriter, ui.Colors{})
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
