// Package config reads seededrand defaults from the environment.
// Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lox/seededrand/seed"
)

// Environment variable names
const (
	// EnvSeed holds a seed spec such as "0x2288", "ns:42" or "name:hero"
	EnvSeed = "SEEDEDRAND_SEED"

	// EnvStream overrides the stream requested by generators
	EnvStream = "SEEDEDRAND_STREAM"

	// EnvLogLevel is one of debug, info, warn, error (defaults to "info")
	EnvLogLevel = "SEEDEDRAND_LOG_LEVEL"
)

// Config holds configuration parsed from environment variables
type Config struct {
	// Seed is the seed spec used when no --seed flag is given
	Seed seed.Spec

	// HasSeed reports whether EnvSeed was set
	HasSeed bool

	// LogLevel is the minimum log level
	LogLevel string
}

// FromEnv parses configuration from environment variables. Unset variables
// keep their defaults; malformed values are errors.
func FromEnv() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is FromEnv with an injectable lookup, for tests.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		Seed:     seed.Fixed(0),
		LogLevel: "info",
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		spec, err := seed.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = spec
		cfg.HasSeed = true
	}

	if v, ok := lookup(EnvStream); ok && v != "" {
		stream, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvStream, err)
		}
		cfg.Seed = cfg.Seed.WithStream(stream)
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level := strings.ToLower(v)
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		default:
			return nil, fmt.Errorf("invalid %s value: %q", EnvLogLevel, v)
		}
	}

	return cfg, nil
}
