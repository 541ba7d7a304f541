// Package config provides the configuration management for the search
// binaries. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as uint64, or the default value if not set
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applySharedEnvOverrides applies environment variable values for the search
// space bounds shared by both binaries, for any flags that were not
// explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - BEAL_MAX_BASE: Upper bound for the bases (uint)
//   - BEAL_MAX_POW: Upper bound for the exponents (uint)
//   - BEAL_PRIME1: First filtering modulus (uint)
//   - BEAL_PRIME2: Second filtering modulus (uint)
//   - BEAL_START: First partition to dispatch (uint)
func applySharedEnvOverrides(sf *sharedFlags, fs *flag.FlagSet) {
	if !isFlagSet(fs, "max-base") {
		sf.maxBase = getEnvUint64("MAX_BASE", sf.maxBase)
	}
	if !isFlagSet(fs, "max-pow") {
		sf.maxPow = getEnvUint64("MAX_POW", sf.maxPow)
	}
	if !isFlagSet(fs, "prime1") {
		sf.prime1 = getEnvUint64("PRIME1", sf.prime1)
	}
	if !isFlagSet(fs, "prime2") {
		sf.prime2 = getEnvUint64("PRIME2", sf.prime2)
	}
	if !isFlagSet(fs, "start") {
		sf.start = getEnvUint64("START", sf.start)
	}
}

// applyCoordinatorEnvOverrides applies environment variable values for
// coordinator-only settings.
//
// Supported environment variables:
//   - BEAL_OUTPUT: Candidate output file path (string)
//   - BEAL_PORT: Listen port (string)
//   - BEAL_HOST: Bind interface (string)
//   - BEAL_REPORT_INTERVAL: Progress log interval (duration: "1s", "500ms")
//   - BEAL_QUIET: Enable quiet mode (bool)
//   - BEAL_NO_COLOR: Disable colored output (bool)
func applyCoordinatorEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "host") {
		config.Host = getEnvString("HOST", config.Host)
	}
	if !isFlagSet(fs, "report-interval") {
		config.ReportInterval = getEnvDuration("REPORT_INTERVAL", config.ReportInterval)
	}
	applyCommonBoolOverrides(config, fs)
}

// applyWorkerEnvOverrides applies environment variable values for worker-only
// settings.
//
// Supported environment variables:
//   - BEAL_SERVER: Coordinator base URL (string)
//   - BEAL_WORKERS: Concurrent search goroutines (int)
//   - BEAL_BACKOFF: Wait when no work is available (duration)
//   - BEAL_MAX_RESULTS: Per-partition candidate cap (int)
//   - BEAL_VERIFY: Re-check candidates with exact arithmetic (bool)
//   - BEAL_QUIET: Enable quiet mode (bool)
//   - BEAL_NO_COLOR: Disable colored output (bool)
func applyWorkerEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerURL = getEnvString("SERVER", config.ServerURL)
	}
	if !isFlagSet(fs, "workers") {
		config.Workers = getEnvInt("WORKERS", config.Workers)
	}
	if !isFlagSet(fs, "backoff") {
		config.Backoff = getEnvDuration("BACKOFF", config.Backoff)
	}
	if !isFlagSet(fs, "max-results") {
		config.MaxResults = getEnvInt("MAX_RESULTS", config.MaxResults)
	}
	if !isFlagSet(fs, "verify") {
		config.VerifyCandidates = getEnvBool("VERIFY", config.VerifyCandidates)
	}
	applyCommonBoolOverrides(config, fs)
}

func applyCommonBoolOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
