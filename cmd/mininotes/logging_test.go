package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mininotes/internal/platform"
)

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	cfg := platform.DefaultConfig()

	logger, closer := newLogger(&buf, cfg)
	assert.Nil(t, closer)

	logger.Debug("hidden")
	logger.Info("shown", "id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "id=abc")
}

func TestNewLogger_FanOutToFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := platform.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "mininotes.log")

	logger, closer := newLogger(&buf, cfg)
	require.NotNil(t, closer)

	logger.With("component", "test").Debug("both sinks")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "both sinks")

	raw, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &record))
	assert.Equal(t, "both sinks", record["msg"])
	assert.Equal(t, "test", record["component"])
}
