package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonbass/retail-api/pkg/config"
)

func TestBuildPoolConfig_AplicaLimitesDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "secreto", DBName: "retail", SSLMode: "disable",
		MaxConns:          10,
		MinConns:          3,
		MaxConnLifetime:   15 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 20 * time.Second,
	}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 20*time.Second, pc.HealthCheckPeriod)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "retail", pc.ConnConfig.Database)
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_MinNoSuperaMax(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://app@db:5432/retail", MaxConns: 2, MinConns: 8})
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
}

func TestBuildPoolConfig_IPv4SoloConFlag(t *testing.T) {
	url := "postgres://app@db.example.com:5432/retail"

	plain, err := buildPoolConfig(config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	forced, err := buildPoolConfig(config.DBConfig{DatabaseURL: url, ForceIPv4: true})
	require.NoError(t, err)

	ipv4 := reflect.ValueOf(dialIPv4).Pointer()
	assert.Equal(t, ipv4, reflect.ValueOf(forced.ConnConfig.DialFunc).Pointer())
	assert.NotEqual(t, ipv4, reflect.ValueOf(plain.ConnConfig.DialFunc).Pointer())
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
