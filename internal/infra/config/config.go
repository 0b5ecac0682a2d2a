package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Weather WeatherConfig `yaml:"weather"`
	Sun     SunConfig     `yaml:"sun"`
	History HistoryConfig `yaml:"history"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// WeatherConfig contains OpenWeatherMap settings and caching behavior.
type WeatherConfig struct {
	APIBaseURL   string         `yaml:"apiBaseUrl"`
	APIKey       string         `yaml:"apiKey"`
	DefaultUnits string         `yaml:"defaultUnits"`
	CacheTTL     time.Duration  `yaml:"cacheTtl"`
	Valkey       ValkeyConfig   `yaml:"valkey"`
	Postgres     PostgresConfig `yaml:"postgres"`
}

// SunConfig controls the sunrise/sunset provider.
type SunConfig struct {
	APIBaseURL string `yaml:"apiBaseUrl"`
}

// HistoryConfig bounds the observation and search retention.
type HistoryConfig struct {
	MaxObservations int `yaml:"maxObservations"`
	MaxRecent       int `yaml:"maxRecent"`
}

// ValkeyConfig contains connection information for the shared report cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables. A
// .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.APIBaseURL = v
	}
	if v := os.Getenv("WEATHER_DEFAULT_UNITS"); v != "" {
		cfg.Weather.DefaultUnits = v
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_VALKEY_ENABLED"); v != "" {
		cfg.Weather.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("WEATHER_VALKEY_ADDR"); v != "" {
		cfg.Weather.Valkey.Addr = v
	}
	if v := os.Getenv("WEATHER_POSTGRES_DSN"); v != "" {
		cfg.Weather.Postgres.DSN = v
	}
	if v := os.Getenv("WEATHER_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("WEATHER_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("SUN_API_BASE_URL"); v != "" {
		cfg.Sun.APIBaseURL = v
	}
	if v := os.Getenv("HISTORY_MAX_OBSERVATIONS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxObservations = parsed
		}
	}
	if v := os.Getenv("HISTORY_MAX_RECENT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxRecent = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Weather: WeatherConfig{
			APIBaseURL:   "https://api.openweathermap.org/data/2.5",
			DefaultUnits: "metric",
			CacheTTL:     10 * time.Minute,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
		Sun: SunConfig{
			APIBaseURL: "https://api.sunrise-sunset.org/json",
		},
		History: HistoryConfig{
			MaxObservations: 30,
			MaxRecent:       10,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return errors.New("weather.apiKey cannot be empty (set OPENWEATHER_API_KEY)")
	}
	if c.Weather.APIBaseURL == "" {
		return errors.New("weather.apiBaseUrl cannot be empty")
	}
	if c.Weather.DefaultUnits != "metric" && c.Weather.DefaultUnits != "imperial" {
		return errors.New("weather.defaultUnits must be metric or imperial")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Valkey.Enabled && strings.TrimSpace(c.Weather.Valkey.Addr) == "" {
		return errors.New("weather.valkey.addr cannot be empty when the shared cache is enabled")
	}
	if c.Sun.APIBaseURL == "" {
		return errors.New("sun.apiBaseUrl cannot be empty")
	}
	if c.History.MaxObservations <= 0 {
		return errors.New("history.maxObservations must be positive")
	}
	if c.History.MaxRecent <= 0 {
		return errors.New("history.maxRecent must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
