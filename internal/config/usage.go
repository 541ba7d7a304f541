package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bealsearch/internal/ui"
)

// setCustomUsage installs a colored usage function on the flag set.
func setCustomUsage(fs *flag.FlagSet, tagline string) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		// Header
		fmt.Fprintf(out, "\n%sBeal Conjecture Search%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "%s\n\n", tagline)
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			// Print default value if meaningful
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}

// reportConfigError prints the configuration error with the usage text and
// returns the original error so callers can map it to an exit code.
func reportConfigError(fs *flag.FlagSet, errorWriter io.Writer, err error) error {
	fmt.Fprintln(errorWriter, "Configuration error:", err)
	fs.Usage()
	return err
}
