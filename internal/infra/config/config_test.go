package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsValidateWithKey(t *testing.T) {
	cfg := defaultConfig()
	cfg.Weather.APIKey = "test-key"
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "metric", cfg.Weather.DefaultUnits)
	require.Equal(t, 10*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, 30, cfg.History.MaxObservations)
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
}

func TestValidateRejectsBadUnits(t *testing.T) {
	cfg := defaultConfig()
	cfg.Weather.APIKey = "test-key"
	cfg.Weather.DefaultUnits = "kelvin"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsValkeyWithoutAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Weather.APIKey = "test-key"
	cfg.Weather.Valkey.Enabled = true
	require.Error(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("WEATHER_DEFAULT_UNITS", "imperial")
	t.Setenv("WEATHER_CACHE_TTL", "30m")
	t.Setenv("HISTORY_MAX_RECENT", "5")
	t.Setenv("HTTP_RATE_LIMIT_ENABLED", "false")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, "env-key", cfg.Weather.APIKey)
	require.Equal(t, "imperial", cfg.Weather.DefaultUnits)
	require.Equal(t, 30*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, 5, cfg.History.MaxRecent)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
}
