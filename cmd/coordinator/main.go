// Command coordinator runs the search coordinator: it generates work
// partitions, serves them to workers over HTTP, and persists confirmed
// candidate quadruples.
package main

import (
	"os"

	"github.com/agbru/bealsearch/internal/app"
	apperrors "github.com/agbru/bealsearch/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout, "coordinator")
		os.Exit(apperrors.ExitSuccess)
	}

	a, err := app.NewCoordinator(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		// Parse errors are already reported with usage on stderr.
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(a.RunCoordinator(os.Stdout))
}
