package slogger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{"debug level", "debug", LevelDebug},
		{"info level", "info", LevelInfo},
		{"warn level", "warn", LevelWarn},
		{"error level", "error", LevelError},
		{"uppercase", "DEBUG", LevelDebug},
		{"mixed case", "WaRn", LevelWarn},
		{"invalid level", "invalid", DefaultLogLevel},
		{"empty string", "", DefaultLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level := LevelFromString(tc.input)
			require.Equal(t, tc.expected, level)
		})
	}
}

func TestDevNullLogger(t *testing.T) {
	logger := NewDevNullLogger()

	// These calls should not panic
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	withLogger := logger.With("context", "value")
	require.NotNil(t, withLogger)
	require.IsType(t, &DevNullLogger{}, withLogger)
}

func TestSlogger(t *testing.T) {
	logger := New(LevelDebug)
	require.NotNil(t, logger)

	// These calls should not panic
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	withLogger := logger.With("context", "value")
	require.NotNil(t, withLogger)
	require.IsType(t, &Slogger{}, withLogger)
}

func TestContextFunctions(t *testing.T) {
	logger := NewDevNullLogger()

	ctx := WithLogger(context.Background(), logger)
	require.NotNil(t, ctx)

	retrievedLogger := Ctx(ctx)
	require.Equal(t, logger, retrievedLogger)

	// A context without a logger falls back to a new Slogger
	emptyLogger := Ctx(context.Background())
	require.NotNil(t, emptyLogger)
	require.IsType(t, &Slogger{}, emptyLogger)
}
