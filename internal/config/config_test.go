package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns)
	assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
	assert.Equal(t, 2*time.Second, cfg.RedisDialTimeout)
	assert.Equal(t, time.Second, cfg.RedisOpTimeout)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("REDIS_DIAL_TIMEOUT", "5s")
	t.Setenv("REDIS_OP_TIMEOUT", "500ms")
	t.Setenv("RATE_LIMIT_PER_MIN", "60")

	cfg := Load()

	assert.Equal(t, 40, cfg.DBMaxOpenConns)
	assert.Equal(t, 8, cfg.DBMaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.RedisDialTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.RedisOpTimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMin)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
}
