package slogging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger(t *testing.T) {
	t.Run("Level Filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsole(LevelWarn, &buf)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Printf Formatting", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsole(LevelInfo, &buf)

		logger.Info("validation failed on %d parameter(s): %s", 2, "q, page")

		assert.Contains(t, buf.String(), "validation failed on 2 parameter(s): q, page")
	})

	t.Run("Sanitizes Line Breaks", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewConsole(LevelInfo, &buf)

		logger.Info("value %q rejected", "a\nFORGED LINE")

		assert.NotContains(t, buf.String(), "\nFORGED LINE")
		assert.Contains(t, buf.String(), `\nFORGED LINE`)
	})
}

func TestFileLogger(t *testing.T) {
	t.Run("Writes JSON To Rotating File", func(t *testing.T) {
		dir := t.TempDir()
		logger, err := New(Config{Level: LevelInfo, LogDir: dir})
		require.NoError(t, err)

		logger.Warn("parameter validation failed")
		require.NoError(t, logger.Close())

		data, err := os.ReadFile(filepath.Join(dir, "formgate.log"))
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(bytes.Split(data, []byte("\n"))[0]), &entry))
		assert.Equal(t, "parameter validation failed", entry["msg"])
		assert.Equal(t, "WARN", entry["level"])
	})

	t.Run("Creates Log Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "logs")
		logger, err := New(Config{Level: LevelDebug, LogDir: dir})
		require.NoError(t, err)
		defer func() { _ = logger.Close() }()

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}
