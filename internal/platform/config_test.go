package platform_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mininotes/internal/platform"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := platform.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	want := platform.DefaultConfig()
	assert.Equal(t, want.MaxTextLength, cfg.MaxTextLength)
	assert.Equal(t, want.SeedLimit, cfg.SeedLimit)
	assert.Equal(t, want.SweepGrace, cfg.SweepGrace)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /srv/notes\nseed_limit: 50\nsweep_grace: 10m\nlog_level: debug\n"), 0644))

	t.Setenv("MININOTES_SEED_LIMIT", "7")

	cfg, err := platform.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/notes", cfg.DataDir)
	assert.Equal(t, 7, cfg.SeedLimit)
	assert.Equal(t, 10*time.Minute, cfg.SweepGrace)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 10000, cfg.MaxTextLength)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed_limit: [nope"), 0644))

	_, err := platform.LoadConfig(path)
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := platform.DefaultConfig()
	cfg.DataDir = "/tmp/elsewhere"
	cfg.SerializeUpdates = true

	require.NoError(t, platform.WriteConfig(path, cfg, false))
	assert.Error(t, platform.WriteConfig(path, cfg, false), "existing file must not be replaced")
	require.NoError(t, platform.WriteConfig(path, cfg, true))

	loaded, err := platform.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
