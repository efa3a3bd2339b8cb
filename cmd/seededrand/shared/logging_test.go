package shared

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestStructuredLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupStructuredLogger(&buf, "info")
	logger.Info().Str("seed", "ns:42").Msg("hello")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "ns:42", entry["seed"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestConsoleLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, "warn")
	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestRunnerLoggerLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, SetupRunnerLogger("debug").GetLevel())
	assert.Equal(t, log.WarnLevel, SetupRunnerLogger("info").GetLevel())
}
