// Package config provides the configuration management for the search
// binaries. It defines the configuration structure, handles command-line
// parsing for the coordinator and the worker, and validates the values.
package config

import (
	"flag"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/agbru/bealsearch/internal/coordinator"
	apperrors "github.com/agbru/bealsearch/internal/errors"
	"github.com/agbru/bealsearch/internal/search"
)

const (
	// EnvPrefix is the prefix for all environment variables used by the
	// search binaries. Environment variables provide an alternative to CLI
	// flags, following the 12-Factor App methodology.
	EnvPrefix = "BEAL_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultMaxBase is the default upper bound for the bases a, b, c.
	DefaultMaxBase uint64 = 300
	// DefaultMaxPow is the default upper bound for the exponents x, y, z.
	DefaultMaxPow uint64 = 300
	// DefaultPrime1 is the first filtering modulus, the largest prime below 2^32.
	DefaultPrime1 uint64 = 4294967291
	// DefaultPrime2 is the second filtering modulus, the next prime down.
	DefaultPrime2 uint64 = 4294967279
	// DefaultStart is the first partition to dispatch.
	DefaultStart uint64 = 1
	// DefaultPort is the default coordinator port.
	DefaultPort = "8000"
	// DefaultOutput is the default candidate output file.
	DefaultOutput = "results.txt"
	// DefaultServerURL is the coordinator address workers connect to.
	DefaultServerURL = "http://localhost:8000"
	// DefaultBackoff is how long a worker waits when no work is available.
	DefaultBackoff = 10 * time.Second
	// DefaultMaxResults caps the candidates a single partition may yield.
	DefaultMaxResults = 4096
	// DefaultReportInterval is how often the coordinator logs progress.
	DefaultReportInterval = time.Second
)

// AppConfig aggregates the configuration parameters for both binaries.
// Coordinator-only and worker-only fields are populated by their respective
// parse functions and ignored by the other binary.
type AppConfig struct {
	// MaxBase is the upper bound (inclusive) for the bases a, b, c.
	MaxBase uint32
	// MaxPow is the upper bound (inclusive) for the exponents x, y, z.
	MaxPow uint32
	// Primes holds the two filtering moduli.
	Primes [2]uint32
	// Start is the first partition the coordinator dispatches. Partitions
	// below Start are treated as already searched.
	Start uint32
	// OutputFile is the path where candidate quadruples are persisted.
	OutputFile string
	// Port specifies the port the coordinator listens on.
	Port string
	// Host specifies the interface the coordinator binds to ("" for all).
	Host string
	// ReportInterval is how often the coordinator logs progress.
	ReportInterval time.Duration

	// ServerURL is the coordinator address workers connect to.
	ServerURL string
	// Workers is the number of concurrent search goroutines per worker process.
	Workers int
	// Backoff is how long a worker waits before retrying when the
	// coordinator has no work.
	Backoff time.Duration
	// MaxResults caps the candidates a single partition may yield before the
	// worker aborts.
	MaxResults int
	// VerifyCandidates, if true, makes the worker re-check each candidate
	// with exact arithmetic before reporting it.
	VerifyCandidates bool

	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
}

// ToSearchConfig converts the application configuration into the search
// engine's configuration.
func (c AppConfig) ToSearchConfig() search.Config {
	return search.Config{
		MaxBase:    c.MaxBase,
		MaxPow:     c.MaxPow,
		Primes:     c.Primes,
		MaxResults: c.MaxResults,
	}
}

// ToCoordinatorConfig converts the application configuration into the
// coordinator's problem configuration.
func (c AppConfig) ToCoordinatorConfig() coordinator.Config {
	return coordinator.Config{
		MaxBase: c.MaxBase,
		MaxPow:  c.MaxPow,
		Primes:  c.Primes,
		Start:   c.Start,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.MaxBase < 1 {
		return apperrors.NewConfigError("max-base must be at least 1")
	}
	if c.MaxPow < 3 {
		return apperrors.NewConfigError("max-pow must be at least 3, got %d", c.MaxPow)
	}
	if c.Primes[0] == 0 || c.Primes[1] == 0 {
		return apperrors.NewConfigError("filter moduli must be non-zero")
	}
	if c.Primes[0] == c.Primes[1] {
		return apperrors.NewConfigError("filter moduli must be distinct, both are %d", c.Primes[0])
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.Backoff <= 0 {
		return apperrors.NewConfigError("backoff must be strictly positive")
	}
	if c.MaxResults < 1 {
		return apperrors.NewConfigError("max-results must be at least 1, got %d", c.MaxResults)
	}
	return nil
}

// narrow checks that a flag value fits in uint32 before narrowing.
func narrow(name string, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, apperrors.NewConfigError("%s does not fit in 32 bits: %d", name, v)
	}
	return uint32(v), nil
}

// sharedFlags holds the uint64 staging values for flags that are narrowed to
// uint32 after parsing.
type sharedFlags struct {
	maxBase, maxPow, prime1, prime2, start uint64
}

// registerSharedFlags defines the search space flags common to both binaries.
func registerSharedFlags(fs *flag.FlagSet, sf *sharedFlags) {
	fs.Uint64Var(&sf.maxBase, "max-base", DefaultMaxBase, "Upper bound (inclusive) for the bases a, b, c.")
	fs.Uint64Var(&sf.maxPow, "max-pow", DefaultMaxPow, "Upper bound (inclusive) for the exponents x, y, z.")
	fs.Uint64Var(&sf.prime1, "prime1", DefaultPrime1, "First filtering modulus (prime near 2^32).")
	fs.Uint64Var(&sf.prime2, "prime2", DefaultPrime2, "Second filtering modulus (prime near 2^32).")
}

// applySharedFlags narrows the staged values into the configuration.
func applySharedFlags(config *AppConfig, sf sharedFlags) error {
	var err error
	if config.MaxBase, err = narrow("max-base", sf.maxBase); err != nil {
		return err
	}
	if config.MaxPow, err = narrow("max-pow", sf.maxPow); err != nil {
		return err
	}
	if config.Primes[0], err = narrow("prime1", sf.prime1); err != nil {
		return err
	}
	if config.Primes[1], err = narrow("prime2", sf.prime2); err != nil {
		return err
	}
	if config.Start, err = narrow("start", sf.start); err != nil {
		return err
	}
	return nil
}

// ParseCoordinatorConfig parses the coordinator's command-line arguments and
// populates an AppConfig. It defines the flags, applies environment variable
// overrides, and validates the result.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing or validation fails.
func ParseCoordinatorConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{
		Workers:    1,
		Backoff:    DefaultBackoff,
		MaxResults: DefaultMaxResults,
	}
	var sf sharedFlags
	registerSharedFlags(fs, &sf)
	fs.Uint64Var(&sf.start, "start", DefaultStart, "First partition to dispatch (lower partitions are treated as searched).")
	fs.StringVar(&config.OutputFile, "output", DefaultOutput, "Output file path for candidate quadruples.")
	fs.StringVar(&config.OutputFile, "o", DefaultOutput, "Output file path (shorthand).")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on.")
	fs.StringVar(&config.Host, "host", "", "Interface to bind to (default all interfaces).")
	fs.DurationVar(&config.ReportInterval, "report-interval", DefaultReportInterval, "How often to log dispatch progress.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")

	setCustomUsage(fs, "Distributed search coordinator: dispatches base partitions to workers and persists candidates.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applySharedEnvOverrides(&sf, fs)
	applyCoordinatorEnvOverrides(&config, fs)

	if err := applySharedFlags(&config, sf); err != nil {
		return AppConfig{}, reportConfigError(fs, errorWriter, err)
	}
	if err := config.Validate(); err != nil {
		return AppConfig{}, reportConfigError(fs, errorWriter, err)
	}
	return config, nil
}

// ParseWorkerConfig parses the worker's command-line arguments and populates
// an AppConfig. The search space bounds are not flags here: the worker adopts
// whatever parameters the coordinator's first work unit carries.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments.
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing or validation fails.
func ParseWorkerConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	// Bounds are placeholders until the first work unit fixes them.
	config := AppConfig{
		MaxBase: uint32(DefaultMaxBase),
		MaxPow:  uint32(DefaultMaxPow),
		Primes:  [2]uint32{uint32(DefaultPrime1), uint32(DefaultPrime2)},
		Start:   uint32(DefaultStart),
	}
	fs.StringVar(&config.ServerURL, "server", DefaultServerURL, "Coordinator base URL.")
	fs.IntVar(&config.Workers, "workers", runtime.NumCPU(), "Number of concurrent search goroutines.")
	fs.DurationVar(&config.Backoff, "backoff", DefaultBackoff, "Wait before retrying when the coordinator has no work.")
	fs.IntVar(&config.MaxResults, "max-results", DefaultMaxResults, "Abort if a single partition yields more candidates than this.")
	fs.BoolVar(&config.VerifyCandidates, "verify", false, "Re-check candidates with exact arithmetic before reporting.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")

	setCustomUsage(fs, "Search worker: pulls base partitions from the coordinator and reports candidate quadruples.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyWorkerEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		return AppConfig{}, reportConfigError(fs, errorWriter, err)
	}
	return config, nil
}
