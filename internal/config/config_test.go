package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storyboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 1.0, cfg.Playback.Speed)
	assert.Equal(t, 300.0, cfg.Studio.TransitionDuration)
	assert.Equal(t, 10000.0, cfg.Studio.MaxHoldTime)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := write(t, `
log_level: debug
playback:
  loop: true
  frame_rate: 30
store:
  backend: redis
  redis:
    addr: cache:6379
    prefix: "sb:"
    ttl: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Playback.Loop)
	assert.Equal(t, 30, cfg.Playback.FrameRate)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 500.0, cfg.Studio.DefaultHoldTime)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(write(t, "store:\n  backend: sqlite\n"))
	assert.ErrorContains(t, err, "unknown store backend")

	_, err = Load(write(t, "studio:\n  min_hold_time: 100\n  max_hold_time: 10\n"))
	assert.ErrorContains(t, err, "max_hold_time")

	_, err = Load(write(t, "playback: [oops"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
