package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierflow/courier/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
log_level: debug
shutdown_timeout: 5s
unflagged_fallback: true
redis:
  addr: "localhost:6379"
  db: 2
  ttl: 24h
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeoutDuration())
	assert.True(t, cfg.UnflaggedFallback)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTLDuration())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `addr: ":9090"`)

	t.Setenv(config.EnvAddr, ":7070")
	t.Setenv(config.EnvRedisAddr, "redis:6379")
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("BadYAML", func(t *testing.T) {
		path := writeConfig(t, "addr: [\n")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("UnknownLogLevel", func(t *testing.T) {
		path := writeConfig(t, `log_level: verbose`)
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("BadRedisTTL", func(t *testing.T) {
		path := writeConfig(t, "redis:\n  ttl: sometimes\n")
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}
