package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/weathermate/weather-mate/internal/domain/comparison"
	"github.com/weathermate/weather-mate/internal/domain/history"
	"github.com/weathermate/weather-mate/internal/domain/suninfo"
	"github.com/weathermate/weather-mate/internal/domain/weather"
	"github.com/weathermate/weather-mate/internal/infra/config"
	"github.com/weathermate/weather-mate/internal/infra/historyrepo"
	"github.com/weathermate/weather-mate/internal/infra/openweather"
	"github.com/weathermate/weather-mate/internal/infra/reportcache"
	"github.com/weathermate/weather-mate/internal/infra/sunapi"
	"github.com/weathermate/weather-mate/pkg/metrics"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		DefaultUnits: cfg.Weather.DefaultUnits,
		CacheTTL:     cfg.Weather.CacheTTL,
	}
}

func provideHistoryConfig(cfg *config.Config) history.Config {
	return history.Config{
		MaxObservations: cfg.History.MaxObservations,
		MaxRecent:       cfg.History.MaxRecent,
	}
}

func provideUpstreamUsage() *metrics.UpstreamUsage {
	return metrics.NewUpstreamUsage()
}

func provideWeatherClient(cfg *config.Config, usage *metrics.UpstreamUsage) *openweather.Client {
	return openweather.NewClient(cfg.Weather.APIBaseURL, cfg.Weather.APIKey, usage)
}

func provideSunClient(cfg *config.Config) *sunapi.Client {
	return sunapi.NewClient(cfg.Sun.APIBaseURL)
}

func provideHistoryRecorder(svc history.Service) weather.HistoryRecorder {
	return svc
}

func provideWeatherSource(svc weather.Service) comparison.WeatherSource {
	return svc
}

func provideSunService(client *sunapi.Client, logger *slog.Logger) suninfo.Service {
	return suninfo.NewService(client, logger)
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) history.Repository {
	fallback := historyrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Weather.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Weather.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Weather.Postgres.MaxConns
	}
	if cfg.Weather.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Weather.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return historyrepo.NewPostgresRepository(pool)
}

func provideReportStore(cfg *config.Config, logger *slog.Logger) weather.ReportStore {
	if cfg.Weather.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return reportcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return reportcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("report valkey store enabled", "addr", cfg.Weather.Valkey.Addr)
			return reportcache.NewValkeyStore(client, "report")
		}
	}
	return reportcache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
