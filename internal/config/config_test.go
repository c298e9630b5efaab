package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("RV_POSTGRES_DSN", "postgres://localhost/rendezvous")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsEnvProduction())
	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, time.Minute, cfg.ActivityFlushInterval)
	assert.Equal(t, 10*time.Minute, cfg.ReferenceCacheLifetime)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("RV_ENVIRONMENT", "Production")
	t.Setenv("RV_STORAGE_DRIVER", "memory")
	t.Setenv("RV_ACTIVITY_FLUSH_INTERVAL", "15s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnvProduction())
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 15*time.Second, cfg.ActivityFlushInterval)
}

func TestValidate(t *testing.T) {
	cfg := &Config{StorageDriver: StorageDriverPostgres, ActivityFlushInterval: time.Minute}
	assert.Error(t, cfg.Validate())

	cfg.PostgresDSN = "postgres://localhost/rendezvous"
	assert.NoError(t, cfg.Validate())

	cfg.StorageDriver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = &Config{StorageDriver: StorageDriverMemory}
	assert.Error(t, cfg.Validate())
}
