package internal

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_Production(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "production", "info")

	logger.Debug("hidden")
	logger.Info("appointment composed", "case_type", "Civil Case")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "appointment composed", entry["msg"])
	assert.Equal(t, "nhcadvocate", entry["service"])
	assert.Equal(t, "Civil Case", entry["case_type"])
}

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "development", "debug")

	logger.Debug("template reloaded")
	assert.Contains(t, buf.String(), "msg=\"template reloaded\"")
}

func TestLogWriter_StdoutOnly(t *testing.T) {
	var buf bytes.Buffer
	w, closer := LogWriter(&buf, LogFileConfig{})
	defer closer.Close()

	_, err := w.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", buf.String())
}

func TestLogWriter_TeesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	w, closer := LogWriter(&buf, LogFileConfig{Path: path, MaxSizeMB: 1})
	NewLogger(w, "production", "info").Info("server started", "port", 8080)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"server started"`)
	assert.Equal(t, buf.String(), string(data))
}
