package comparison

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/weathermate/weather-mate/internal/domain/weather"
	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

const maxCities = 3

// Service compares current conditions across a handful of cities.
type Service interface {
	Compare(ctx context.Context, req Request) (Result, error)
}

// WeatherSource provides the per-city snapshot the comparison is built from.
type WeatherSource interface {
	Snapshot(ctx context.Context, city, units string) (weather.Snapshot, error)
}

// Request names the cities to compare.
type Request struct {
	Cities []string `json:"cities"`
	Units  string   `json:"units"`
}

// Result carries every fetched snapshot plus the derived superlatives.
type Result struct {
	Cities    []weather.Snapshot `json:"cities"`
	Skipped   []string           `json:"skipped,omitempty"`
	Warmest   string             `json:"warmest"`
	Coldest   string             `json:"coldest"`
	MostHumid string             `json:"mostHumid"`
	Windiest  string             `json:"windiest"`
	Text      string             `json:"text"`
}

type service struct {
	source WeatherSource
	logger *slog.Logger
}

// NewService wires up the comparison domain.
func NewService(source WeatherSource, logger *slog.Logger) Service {
	return &service{source: source, logger: logger.With("component", "comparison.service")}
}

func (s *service) Compare(ctx context.Context, req Request) (Result, error) {
	cities := dedupeCities(req.Cities)
	if len(cities) < 2 {
		return Result{}, apperrors.Wrap("invalid_input", "at least two distinct cities are required", nil)
	}
	if len(cities) > maxCities {
		return Result{}, apperrors.Wrap("invalid_input", fmt.Sprintf("at most %d cities can be compared", maxCities), nil)
	}

	result := Result{}
	for _, city := range cities {
		snapshot, err := s.source.Snapshot(ctx, city, req.Units)
		if err != nil {
			// A city that cannot be fetched is reported, not fatal.
			s.logger.Warn("comparison city skipped", "city", city, "error", err)
			result.Skipped = append(result.Skipped, city)
			continue
		}
		result.Cities = append(result.Cities, snapshot)
	}
	if len(result.Cities) == 0 {
		return Result{}, apperrors.Wrap("upstream_error", "no city could be fetched for comparison", nil)
	}

	result.Warmest = pickCity(result.Cities, func(a, b weather.Snapshot) bool {
		return a.Current.Temperature > b.Current.Temperature
	})
	result.Coldest = pickCity(result.Cities, func(a, b weather.Snapshot) bool {
		return a.Current.Temperature < b.Current.Temperature
	})
	result.MostHumid = pickCity(result.Cities, func(a, b weather.Snapshot) bool {
		return a.Current.Humidity > b.Current.Humidity
	})
	result.Windiest = pickCity(result.Cities, func(a, b weather.Snapshot) bool {
		return a.Current.WindSpeed > b.Current.WindSpeed
	})
	result.Text = renderComparison(result.Cities)
	return result, nil
}

func dedupeCities(cities []string) []string {
	out := make([]string, 0, len(cities))
	seen := make(map[string]struct{})
	for _, city := range cities {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}
		key := strings.ToLower(city)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, city)
	}
	return out
}

func pickCity(snapshots []weather.Snapshot, better func(a, b weather.Snapshot) bool) string {
	best := snapshots[0]
	for _, candidate := range snapshots[1:] {
		if better(candidate, best) {
			best = candidate
		}
	}
	return best.City
}

func renderComparison(snapshots []weather.Snapshot) string {
	var b strings.Builder
	b.WriteString("\U0001F30D WEATHER COMPARISON\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	for i, snapshot := range snapshots {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, strings.ToUpper(snapshot.City))
		fmt.Fprintf(&b, "    \U0001F321️ %g°\n", snapshot.Current.Temperature)
		fmt.Fprintf(&b, "    ☁️ %s\n", snapshot.Current.Condition)
		fmt.Fprintf(&b, "    \U0001F4A7 %d%% humidity\n", snapshot.Current.Humidity)
		fmt.Fprintf(&b, "    \U0001F4A8 %g wind\n", snapshot.Current.WindSpeed)
		fmt.Fprintf(&b, "    \U0001F32B️ AQI: %s\n\n", snapshot.AirQuality)
	}
	return b.String()
}
