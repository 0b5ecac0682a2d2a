//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/weathermate/weather-mate/internal/bootstrap"
	"github.com/weathermate/weather-mate/internal/domain/comparison"
	"github.com/weathermate/weather-mate/internal/domain/history"
	"github.com/weathermate/weather-mate/internal/domain/weather"
	"github.com/weathermate/weather-mate/internal/infra/config"
	"github.com/weathermate/weather-mate/internal/infra/openweather"
	httpiface "github.com/weathermate/weather-mate/internal/interface/http"
	"github.com/weathermate/weather-mate/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideHistoryConfig,
		provideUpstreamUsage,
		provideWeatherClient,
		provideSunClient,
		provideHistoryRepository,
		provideReportStore,
		provideHistoryRecorder,
		provideWeatherSource,
		provideSunService,
		weather.NewService,
		history.NewService,
		comparison.NewService,
		wire.Bind(new(weather.APIClient), new(*openweather.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
