package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsYOverridesPorEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("IDEMPOTENCY_TTL", "2h")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 2*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "v22.0", cfg.Notify.WhatsAppAPIVersion)
	assert.False(t, cfg.Notify.WhatsAppEnabled())
	assert.False(t, cfg.Notify.PubSubEnabled())
	assert.False(t, cfg.Facebook.Enabled())
	assert.Equal(t, "v22.0", cfg.Facebook.APIVersion)
}

func TestLoad_Facebook(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("FB_PAGE_ID", "1234")
	t.Setenv("FB_PAGE_ACCESS_TOKEN", "tok")
	t.Setenv("FB_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Facebook.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Facebook.Timeout)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "retail", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/retail?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoad_PoolDeConexiones(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int32(7), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Equal(t, 90*time.Second, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.True(t, cfg.DB.ForceIPv4)
}
