package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("AUTH_DEMO_PREFILL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "estate-navigator", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.Logger.Development)
	assert.True(t, cfg.Auth.DemoPrefill, "pre-fill defaults on in development")
	assert.Equal(t, 1500, cfg.Auth.LoginDelayMS)
	assert.Equal(t, 1000, cfg.Auth.VerifyDelayMS)
	assert.Equal(t, "estate:navigation", cfg.Analytics.Channel)
	assert.Equal(t, 256, cfg.Analytics.BufferSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_LOGIN_DELAY_MS", "10")
	t.Setenv("NAV_ROUTES_FILE", "/etc/routes.yaml")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("AUTH_DEMO_PREFILL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Logger.Development)
	assert.False(t, cfg.Auth.DemoPrefill, "pre-fill defaults off outside development")
	assert.Equal(t, 10*time.Millisecond, Delay(cfg.Auth.LoginDelayMS))
	assert.Equal(t, "/etc/routes.yaml", cfg.Navigation.RoutesFile)

	t.Setenv("AUTH_DEMO_PREFILL", "true")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.DemoPrefill)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "one")
		_, err := Load()
		assert.ErrorContains(t, err, "REDIS_DB")
	})
	t.Run("negative delay", func(t *testing.T) {
		t.Setenv("AUTH_VERIFY_DELAY_MS", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "AUTH_VERIFY_DELAY_MS")
	})
	t.Run("buffer size", func(t *testing.T) {
		t.Setenv("ANALYTICS_BUFFER_SIZE", "-4")
		_, err := Load()
		assert.ErrorContains(t, err, "ANALYTICS_BUFFER_SIZE")
	})
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	t.Setenv("SOME_INT", "x")
	t.Setenv("SOME_BOOL", "maybe")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, "fallback", getEnv("UNSET_FOR_TEST", "fallback"))
}
