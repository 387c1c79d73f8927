package observability

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/vibepopper/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "test"}, zapcore.AddSync(&buf))
	logger.Debug("placement resolved", zap.String("placement", "top"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "test", entry["logger"])
	assert.Equal(t, "top", entry["placement"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggerConfig{Level: "not-a-level", Format: "console"}, zapcore.AddSync(&buf))
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestNew_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popper.log")
	var buf bytes.Buffer
	logger := New(config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&buf))
	logger.Info("to file")
	assert.NoError(t, logger.Sync())
	assert.FileExists(t, path)
}
