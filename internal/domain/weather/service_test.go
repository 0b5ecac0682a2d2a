package weather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
	"github.com/weathermate/weather-mate/pkg/metrics"
)

type stubAPIClient struct {
	coordinatesDoc any
	currentDoc     any
	airQualityDoc  any
	forecastDoc    any

	coordinatesErr error
	currentErr     error
	airQualityErr  error
	forecastErr    error

	calls int
}

func (s *stubAPIClient) FetchCoordinates(_ context.Context, _ string) (any, error) {
	s.calls++
	return s.coordinatesDoc, s.coordinatesErr
}

func (s *stubAPIClient) FetchCurrentWeather(_ context.Context, _, _ string) (any, error) {
	s.calls++
	return s.currentDoc, s.currentErr
}

func (s *stubAPIClient) FetchAirQuality(_ context.Context, _, _ float64) (any, error) {
	s.calls++
	return s.airQualityDoc, s.airQualityErr
}

func (s *stubAPIClient) FetchForecast(_ context.Context, _, _ string) (any, error) {
	s.calls++
	return s.forecastDoc, s.forecastErr
}

type stubStore struct {
	reports map[string]Report
	saves   int
}

func newStubStore() *stubStore {
	return &stubStore{reports: make(map[string]Report)}
}

func (s *stubStore) GetReport(_ context.Context, key string) (Report, bool, error) {
	report, ok := s.reports[key]
	return report, ok, nil
}

func (s *stubStore) SaveReport(_ context.Context, key string, report Report, _ time.Duration) error {
	s.reports[key] = report
	s.saves++
	return nil
}

type stubRecorder struct {
	cities     []string
	lastTemp   float64
	lastResult string
}

func (s *stubRecorder) RecordObservation(_ context.Context, city string, temp float64, condition string) error {
	s.cities = append(s.cities, city)
	s.lastTemp = temp
	s.lastResult = condition
	return nil
}

func mustDecode(t *testing.T, payload string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))
	return doc
}

func newServiceUnderTest(client *stubAPIClient, store *stubStore, recorder *stubRecorder) *service {
	return &service{
		cfg:      Config{DefaultUnits: UnitsMetric, CacheTTL: 10 * time.Minute},
		client:   client,
		store:    store,
		recorder: recorder,
		usage:    metrics.NewUpstreamUsage(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func healthyClient(t *testing.T) *stubAPIClient {
	t.Helper()
	return &stubAPIClient{
		coordinatesDoc: mustDecode(t, `{"coord":{"lat":51.5,"lon":-0.12}}`),
		currentDoc:     mustDecode(t, currentWeatherPayload),
		airQualityDoc:  mustDecode(t, `{"list":[{"main":{"aqi":2}}]}`),
		forecastDoc:    mustDecode(t, forecastPayload),
	}
}

func TestServiceReportSuccess(t *testing.T) {
	client := healthyClient(t)
	store := newStubStore()
	recorder := &stubRecorder{}
	svc := newServiceUnderTest(client, store, recorder)

	report, err := svc.Report(context.Background(), "London", "")
	require.NoError(t, err)
	require.Equal(t, "London", report.City)
	require.Equal(t, UnitsMetric, report.Units)
	require.Equal(t, "Light Rain", report.Current.Condition)
	require.Equal(t, "2 (Fair)", report.AirQuality)
	require.Len(t, report.Forecast, 1)
	require.Contains(t, report.Text, "Current Weather for London")
	require.Contains(t, report.Text, "Temperature: 18.5 Celsius")
	require.Contains(t, report.Text, "Air Quality Index: 2 (Fair)")
	require.Contains(t, report.Text, "5-DAY FORECAST SUMMARY")

	require.Equal(t, []string{"London"}, recorder.cities)
	require.Equal(t, 18.5, recorder.lastTemp)
	require.Equal(t, 1, store.saves)
}

func TestServiceReportServedFromCache(t *testing.T) {
	client := healthyClient(t)
	store := newStubStore()
	svc := newServiceUnderTest(client, store, &stubRecorder{})

	_, err := svc.Report(context.Background(), "London", "metric")
	require.NoError(t, err)
	callsAfterFirst := client.calls
	require.EqualValues(t, 0, svc.usage.Snapshot().CacheHits)

	report, err := svc.Report(context.Background(), "London", "metric")
	require.NoError(t, err)
	require.Equal(t, "London", report.City)
	require.Equal(t, callsAfterFirst, client.calls, "second report should not hit upstream")
	require.EqualValues(t, 1, svc.usage.Snapshot().CacheHits)
}

func TestServiceReportInvalidCity(t *testing.T) {
	svc := newServiceUnderTest(healthyClient(t), newStubStore(), &stubRecorder{})

	_, err := svc.Report(context.Background(), "!!!", "metric")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestServiceReportInvalidUnits(t *testing.T) {
	svc := newServiceUnderTest(healthyClient(t), newStubStore(), &stubRecorder{})

	_, err := svc.Report(context.Background(), "London", "kelvin")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestServiceReportAirQualityBestEffort(t *testing.T) {
	client := healthyClient(t)
	client.airQualityErr = apperrors.Wrap("rate_limited", "too many requests", nil)
	svc := newServiceUnderTest(client, newStubStore(), &stubRecorder{})

	report, err := svc.Report(context.Background(), "London", "metric")
	require.NoError(t, err)
	require.Equal(t, "Unavailable (Rate Limited)", report.AirQuality)
}

func TestServiceReportForecastBestEffort(t *testing.T) {
	client := healthyClient(t)
	client.forecastErr = apperrors.Wrap("upstream_timeout", "request timed out", nil)
	svc := newServiceUnderTest(client, newStubStore(), &stubRecorder{})

	report, err := svc.Report(context.Background(), "London", "metric")
	require.NoError(t, err)
	require.Empty(t, report.Forecast)
	require.Contains(t, report.Text, "Forecast unavailable (Timeout)")
}

func TestServiceReportCurrentFailureIsFatal(t *testing.T) {
	client := healthyClient(t)
	client.currentErr = apperrors.Wrap("city_not_found", "city not found", nil)
	svc := newServiceUnderTest(client, newStubStore(), &stubRecorder{})

	_, err := svc.Report(context.Background(), "London", "metric")
	require.True(t, apperrors.IsCode(err, "city_not_found"))
}

func TestServiceReportValidationFailure(t *testing.T) {
	client := healthyClient(t)
	client.currentDoc = mustDecode(t, `{"main":{"humidity":70}}`)
	svc := newServiceUnderTest(client, newStubStore(), &stubRecorder{})

	_, err := svc.Report(context.Background(), "London", "metric")
	require.True(t, apperrors.IsCode(err, "invalid_response"))
	require.True(t, IsValidationKind(err, KindMissingField))
}

func TestServiceForecast(t *testing.T) {
	svc := newServiceUnderTest(healthyClient(t), newStubStore(), &stubRecorder{})

	days, err := svc.Forecast(context.Background(), "London", "metric")
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Equal(t, "2024-01-01", days[0].Date)
	require.Equal(t, 10.0, days[0].MinTemp)
	require.Equal(t, 15.0, days[0].MaxTemp)
}

func TestServiceForecastDetail(t *testing.T) {
	svc := newServiceUnderTest(healthyClient(t), newStubStore(), &stubRecorder{})

	detail, err := svc.ForecastDetail(context.Background(), "London", "2024-01-01", "metric")
	require.NoError(t, err)
	require.Contains(t, detail, "2024-01-01")
	require.Contains(t, detail, "00:00")

	detail, err = svc.ForecastDetail(context.Background(), "London", "2030-01-01", "metric")
	require.NoError(t, err)
	require.Equal(t, "No data for 2030-01-01", detail)

	_, err = svc.ForecastDetail(context.Background(), "London", "  ", "metric")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestServiceSnapshot(t *testing.T) {
	svc := newServiceUnderTest(healthyClient(t), newStubStore(), &stubRecorder{})

	snap, err := svc.Snapshot(context.Background(), "London", "")
	require.NoError(t, err)
	require.Equal(t, "London", snap.City)
	require.Equal(t, 51.5, snap.Coordinates.Latitude)
	require.Equal(t, "Light Rain", snap.Current.Condition)
	require.Equal(t, "2 (Fair)", snap.AirQuality)
}
