package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bielsasys/pedidos-api/pkg/config"
)

func TestLoad_DevelopmentPermiteSecretosVacios(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 8, cfg.JWT.ExpHours)
	assert.Equal(t, 3000, cfg.HTTP.Port)
}

func TestLoad_ProduccionExigeJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "superclave")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ProduccionExigeAdminPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "un-secreto-suficientemente-largo")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoad_ProduccionConSecretosCompletos(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "un-secreto-suficientemente-largo")
	t.Setenv("ADMIN_PASSWORD", "superclave")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "superclave", cfg.Admin.Password)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}
