package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
	"github.com/weathermate/weather-mate/pkg/metrics"
	"github.com/weathermate/weather-mate/pkg/util"
)

// Service exposes the weather lookups backing the API surface.
type Service interface {
	Report(ctx context.Context, city, units string) (Report, error)
	Forecast(ctx context.Context, city, units string) ([]ForecastDay, error)
	ForecastDetail(ctx context.Context, city, date, units string) (string, error)
	AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error)
	Snapshot(ctx context.Context, city, units string) (Snapshot, error)
}

// APIClient fetches raw, undecoded-shape documents from the weather provider.
// Implementations return errors carrying apperrors codes (city_not_found,
// rate_limited, invalid_api_key, upstream_timeout, no_connection,
// network_error, upstream_error).
type APIClient interface {
	FetchCoordinates(ctx context.Context, city string) (any, error)
	FetchCurrentWeather(ctx context.Context, city, units string) (any, error)
	FetchAirQuality(ctx context.Context, lat, lon float64) (any, error)
	FetchForecast(ctx context.Context, city, units string) (any, error)
}

// ReportStore caches rendered reports keyed by city and units.
type ReportStore interface {
	GetReport(ctx context.Context, key string) (Report, bool, error)
	SaveReport(ctx context.Context, key string, report Report, ttl time.Duration) error
}

// HistoryRecorder receives every successfully fetched observation.
type HistoryRecorder interface {
	RecordObservation(ctx context.Context, city string, temperature float64, condition string) error
}

type service struct {
	cfg      Config
	client   APIClient
	store    ReportStore
	recorder HistoryRecorder
	usage    *metrics.UpstreamUsage
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the weather domain.
func NewService(cfg Config, client APIClient, store ReportStore, recorder HistoryRecorder, usage *metrics.UpstreamUsage, logger *slog.Logger) Service {
	if usage == nil {
		usage = metrics.NewUpstreamUsage()
	}
	return &service{
		cfg:      cfg,
		client:   client,
		store:    store,
		recorder: recorder,
		usage:    usage,
		logger:   logger.With("component", "weather.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Report(ctx context.Context, city, units string) (Report, error) {
	city, units, err := s.resolveInput(city, units)
	if err != nil {
		return Report{}, err
	}

	key := cacheKey(city, units)
	if cached, ok, cacheErr := s.store.GetReport(ctx, key); cacheErr == nil && ok {
		s.usage.RecordCacheHit()
		s.logger.Debug("report served from cache", "city", city)
		return cached, nil
	} else if cacheErr != nil {
		s.logger.Warn("report cache read failed", "city", city, "error", cacheErr)
	}

	coords, err := s.coordinates(ctx, city)
	if err != nil {
		return Report{}, err
	}

	current, err := s.current(ctx, city, units)
	if err != nil {
		return Report{}, err
	}

	// Air quality and forecast are best-effort: the report still renders
	// with an availability note when either lookup fails.
	airQuality := s.airQualityLine(ctx, coords)
	days, forecastText := s.forecastSection(ctx, city, units)

	if s.recorder != nil {
		if recErr := s.recorder.RecordObservation(ctx, city, current.Temperature, current.Condition); recErr != nil {
			s.logger.Warn("history record failed", "city", city, "error", recErr)
		}
	}

	report := Report{
		City:       city,
		Units:      units,
		Current:    current,
		AirQuality: airQuality,
		Forecast:   days,
		FetchedAt:  s.now(),
	}
	report.Text = renderReport(report, forecastText)

	if saveErr := s.store.SaveReport(ctx, key, report, s.cfg.CacheTTL); saveErr != nil {
		s.logger.Warn("report cache write failed", "city", city, "error", saveErr)
	}
	s.logger.Info("weather report built", "city", city, "units", units, "forecast_days", len(days))
	return report, nil
}

func (s *service) Forecast(ctx context.Context, city, units string) ([]ForecastDay, error) {
	city, units, err := s.resolveInput(city, units)
	if err != nil {
		return nil, err
	}
	doc, err := s.client.FetchForecast(ctx, city, units)
	if err != nil {
		return nil, err
	}
	entries, err := ValidateForecast(doc)
	if err != nil {
		return nil, apperrors.Wrap("invalid_response", "forecast response failed validation", err)
	}
	return AggregateForecast(entries), nil
}

func (s *service) ForecastDetail(ctx context.Context, city, date, units string) (string, error) {
	if strings.TrimSpace(date) == "" {
		return "", apperrors.Wrap("invalid_input", "date must be provided as YYYY-MM-DD", nil)
	}
	days, err := s.Forecast(ctx, city, units)
	if err != nil {
		return "", err
	}
	return RenderForecastDetail(days, date), nil
}

func (s *service) AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error) {
	doc, err := s.client.FetchAirQuality(ctx, lat, lon)
	if err != nil {
		return AirQuality{}, err
	}
	aq, err := ValidateAirQuality(doc)
	if err != nil {
		return AirQuality{}, apperrors.Wrap("invalid_response", "air quality response failed validation", err)
	}
	return aq, nil
}

func (s *service) Snapshot(ctx context.Context, city, units string) (Snapshot, error) {
	city, units, err := s.resolveInput(city, units)
	if err != nil {
		return Snapshot{}, err
	}
	coords, err := s.coordinates(ctx, city)
	if err != nil {
		return Snapshot{}, err
	}
	current, err := s.current(ctx, city, units)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		City:        city,
		Coordinates: coords,
		Current:     current,
		AirQuality:  s.airQualityLine(ctx, coords),
	}, nil
}

func (s *service) resolveInput(city, units string) (string, string, error) {
	city = strings.TrimSpace(city)
	if err := ValidateCityName(city); err != nil {
		return "", "", apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	units, err := resolveUnits(units, s.cfg.DefaultUnits)
	if err != nil {
		return "", "", err
	}
	return city, units, nil
}

func (s *service) coordinates(ctx context.Context, city string) (Coordinates, error) {
	doc, err := s.client.FetchCoordinates(ctx, city)
	if err != nil {
		return Coordinates{}, err
	}
	coords, err := ValidateCoordinates(doc)
	if err != nil {
		return Coordinates{}, apperrors.Wrap("invalid_response", "coordinates response failed validation", err)
	}
	return coords, nil
}

func (s *service) current(ctx context.Context, city, units string) (CurrentWeather, error) {
	doc, err := s.client.FetchCurrentWeather(ctx, city, units)
	if err != nil {
		return CurrentWeather{}, err
	}
	current, err := ValidateCurrentWeather(doc)
	if err != nil {
		return CurrentWeather{}, apperrors.Wrap("invalid_response", "weather response failed validation", err)
	}
	current.Condition = titleCase(current.Condition)
	return current, nil
}

func (s *service) airQualityLine(ctx context.Context, coords Coordinates) string {
	aq, err := s.AirQuality(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Warn("air quality unavailable", "error", err)
		return availabilityNote(err)
	}
	return fmt.Sprintf("%d (%s)", aq.Level, aq.Description)
}

func (s *service) forecastSection(ctx context.Context, city, units string) ([]ForecastDay, string) {
	doc, err := s.client.FetchForecast(ctx, city, units)
	if err != nil {
		s.logger.Warn("forecast unavailable", "city", city, "error", err)
		return nil, forecastNote(err)
	}
	entries, err := ValidateForecast(doc)
	if err != nil {
		s.logger.Warn("forecast failed validation", "city", city, "error", err)
		return nil, "Forecast unavailable (Invalid Response)"
	}
	days := AggregateForecast(entries)
	if len(days) == 0 {
		return nil, "Forecast unavailable (No data)"
	}
	return days, RenderForecastSummary(days)
}
