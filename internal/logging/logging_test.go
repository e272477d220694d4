package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Level("", false))
	assert.Equal(t, slog.LevelWarn, Level(config.LogLevelWarn, false))
	assert.Equal(t, slog.LevelError, Level("ERROR", false))
	assert.Equal(t, slog.LevelDebug, Level(config.LogLevelError, true))
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{
		Config:  config.LoggingConfig{Level: config.LogLevelWarn, Format: config.LogFormatText},
		Console: &buf,
	})
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	logger.Info("hidden")
	logger.Warn("shown", "path", "docs/index.md")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "path=docs/index.md")
}

func TestNew_JSONWithFileSink(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "docsite.log")
	logger, closer, err := New(Options{
		Config: config.LoggingConfig{
			Level:      config.LogLevelInfo,
			Format:     config.LogFormatJSON,
			File:       file,
			MaxSizeMB:  1,
			MaxBackups: 1,
			MaxAgeDays: 1,
		},
		Console: &buf,
	})
	require.NoError(t, err)

	logger.Info("emitted", "format", "js")
	require.NoError(t, closer.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "emitted", entry["msg"])
	assert.Equal(t, "js", entry["format"])

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"emitted"`)
}
