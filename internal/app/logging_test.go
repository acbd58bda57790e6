package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uemacs/internal/config"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.level.String(), "LogLevel(%d)", tt.level)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelOff},
		{"none", LogLevelOff},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLogLevel(tt.input), "ParseLogLevel(%q)", tt.input)
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{Output: nil})
	require.NotNil(t, logger.output)
	assert.NotPanics(t, func() { logger.Info("discarded") })
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test: info message"} {
		assert.Contains(t, output, want)
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	assert.NotContains(t, output, "[DEBUG]")
	assert.NotContains(t, output, "[INFO]")
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "[ERROR]")
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger.Info("formatted %s %d", "test", 42)

	assert.Contains(t, buf.String(), "formatted test 42")
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger.WithFields(map[string]any{
		"key2": 42,
		"key1": "value1",
	}).Info("test")

	assert.Contains(t, buf.String(), "{key1=value1, key2=42}")
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger.WithComponent("renderer").Info("test")

	assert.Contains(t, buf.String(), "component=renderer")
}

func TestLogger_SetLevelShared(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelError,
		Output: &buf,
	})

	logger.Info("should not appear")
	assert.Zero(t, buf.Len())

	logger.SetLevel(LogLevelInfo)
	logger.Info("should appear")
	assert.NotZero(t, buf.Len())
}

func TestLogger_KV(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
	})

	kv := logger.KV()
	kv.Debug("screen resized", "rows", 24, "cols", 80)
	kv.Warn("odd", "dangling")

	output := buf.String()
	assert.Contains(t, output, "screen resized {cols=80, rows=24}")
	assert.Contains(t, output, "dangling=(missing)")
}

func TestLogger_KVKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.KV().Info("100% done")

	assert.Contains(t, buf.String(), "100% done")
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NullLogger.Debug("test")
		NullLogger.Info("test")
		NullLogger.Warn("test")
		NullLogger.Error("test")
		NullLogger.SetLevel(LogLevelDebug)
		NullLogger.WithComponent("x").KV().Debug("test", "k", 1)
	})
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()

	assert.Equal(t, LogLevelInfo, cfg.Level)
	assert.NotNil(t, cfg.Output)
	assert.Equal(t, "uemacs", cfg.Prefix)
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "uemacs.log")

	logger, closer, err := OpenLogFile(config.LoggingSettings{Level: "warn", File: path})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	output := string(data)
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	assert.Contains(t, output, "session=")
}

func TestOpenLogFile_Disabled(t *testing.T) {
	tests := []config.LoggingSettings{
		{Level: "debug"},
		{Level: "off", File: filepath.Join(t.TempDir(), "never.log")},
	}

	for _, s := range tests {
		logger, closer, err := OpenLogFile(s)
		require.NoError(t, err)
		assert.Same(t, NullLogger, logger, "OpenLogFile(%+v)", s)
		assert.NoError(t, closer.Close())
		if s.File != "" {
			_, err := os.Stat(s.File)
			assert.True(t, os.IsNotExist(err), "expected no log file, stat error = %v", err)
		}
	}
}
