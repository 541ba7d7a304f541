// Command worker runs a pool of search loops against a coordinator: it pulls
// work partitions, filters the candidate space through the double-modulus
// residue tables, and reports results back.
package main

import (
	"context"
	"os"

	"github.com/agbru/bealsearch/internal/app"
	apperrors "github.com/agbru/bealsearch/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout, "worker")
		os.Exit(apperrors.ExitSuccess)
	}

	a, err := app.NewWorker(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		// Parse errors are already reported with usage on stderr.
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(a.RunWorker(context.Background(), os.Stdout))
}
