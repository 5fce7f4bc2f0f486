package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"data/incoming"}, cfg.WatchDirectories)
	assert.Equal(t, "logs", cfg.LogDirectory)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dip.yaml")
	content := `watch_directories:
  - /srv/incoming
  - /srv/dropbox
log_directory: /var/log/dip
workers: 4
recursive: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/incoming", "/srv/dropbox"}, cfg.WatchDirectories)
	assert.Equal(t, "/var/log/dip", cfg.LogDirectory)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Recursive)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DIP_WATCH_DIRS", "/a, /b")
	t.Setenv("DIP_LOG_DIR", "/tmp/logs")
	t.Setenv("PORT", "9090")
	t.Setenv("DIP_WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.WatchDirectories)
	assert.Equal(t, "/tmp/logs", cfg.LogDirectory)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 8, cfg.Workers)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("garbage"))
}
