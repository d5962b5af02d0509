package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JOBS_DATABASE_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 150*time.Millisecond, cfg.Export.SettleDelay)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
database:
  url: postgres://file
export:
  settle_delay: 50ms
  watchdog: 2s
logger:
  level: debug
  format: pretty
`), 0o644))

	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JOBS_DATABASE_URL", "postgres://jobs")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres://jobs", cfg.Database.URL)
	assert.Equal(t, "/usr/bin/chromium", cfg.Renderer.ChromePath)
	assert.Equal(t, 50*time.Millisecond, cfg.Export.SettleDelay)
	assert.Equal(t, 2*time.Second, cfg.Export.Watchdog)
	assert.Equal(t, "pretty", cfg.Logger.Format)
	assert.Equal(t, 60*time.Second, cfg.Renderer.Timeout)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "abc")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
