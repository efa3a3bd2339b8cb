package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// SetupRunnerLogger returns the charmbracelet logger handed to plan runners
// and check suites. Their chatter is debug-only, so anything above debug
// keeps them at warn.
func SetupRunnerLogger(level string) *log.Logger {
	runnerLevel := log.WarnLevel
	if parseLevel(level) <= zerolog.DebugLevel {
		runnerLevel = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           runnerLevel,
		ReportTimestamp: true,
		Prefix:          "seededrand",
	})
}

func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}
