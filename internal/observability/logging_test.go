package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: format}, "delve")
		require.NoError(t, err, format)
		assert.NotNil(t, logger)
	}
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLogger(config.LoggingConfig{Level: level, Format: "json", Output: "stderr"}, "")
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"}, "delve")
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"}, "delve")
	assert.Error(t, err)
}

func TestNewLogger_WritesComponentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delve.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path}, "delveserver")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("session started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "session started", entry["msg"])
	assert.Equal(t, "delveserver", entry["component"])
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{
		Level: "info", Format: "json",
		Output: filepath.Join(t.TempDir(), "missing", "dir", "delve.log"),
	}, "delve")
	assert.Error(t, err)
}

func TestNewLogger_ConsoleFileHasNoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console", Output: path}, "delve")
	require.NoError(t, err)

	logger.Warn("goblin fled")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "goblin fled")
	assert.NotContains(t, out, "\x1b[")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1, "no stack trace for warnings")
}
