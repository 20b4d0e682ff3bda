package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "+05:30", cfg.TZOffset)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardCacheTTL)
	assert.Equal(t, "roster.yaml", cfg.RosterFile)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("TZ_OFFSET", "-03:00")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "-03:00", cfg.TZOffset)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.False(t, cfg.CookieSecure)
}
