package suninfo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

// SunClient fetches sunrise and sunset instants for a coordinate pair.
type SunClient interface {
	FetchSunTimes(ctx context.Context, lat, lon float64) (SunTimes, error)
}

// SunTimes are the raw instants an upstream provider reports, in UTC.
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// SunInfo is the derived view handed back to callers.
type SunInfo struct {
	Sunrise         string `json:"sunrise"`
	Sunset          string `json:"sunset"`
	DaylightHours   int    `json:"daylightHours"`
	DaylightMinutes int    `json:"daylightMinutes"`
	UVIndex         int    `json:"uvIndex"`
	UVRisk          string `json:"uvRisk"`
	Text            string `json:"text"`
}

// Service exposes sunrise/sunset lookups with an estimated UV index.
type Service interface {
	SunInfo(ctx context.Context, lat, lon float64, condition string) (SunInfo, error)
}

type service struct {
	client SunClient
	logger *slog.Logger
}

func NewService(client SunClient, logger *slog.Logger) Service {
	return &service{client: client, logger: logger.With("component", "suninfo.service")}
}

func (s *service) SunInfo(ctx context.Context, lat, lon float64, condition string) (SunInfo, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return SunInfo{}, apperrors.Wrap("invalid_input", "coordinates out of range", nil)
	}

	times, err := s.client.FetchSunTimes(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("sun times fetch failed", "error", err)
		return SunInfo{}, err
	}
	if !times.Sunset.After(times.Sunrise) {
		return SunInfo{}, apperrors.Wrap("invalid_response", "sunset does not follow sunrise", nil)
	}

	daylight := times.Sunset.Sub(times.Sunrise)
	info := SunInfo{
		Sunrise:         times.Sunrise.UTC().Format("15:04:05"),
		Sunset:          times.Sunset.UTC().Format("15:04:05"),
		DaylightHours:   int(daylight / time.Hour),
		DaylightMinutes: int(daylight/time.Minute) % 60,
	}
	info.UVIndex, info.UVRisk = EstimateUV(condition, info.Sunrise)
	info.Text = renderSunInfo(info)
	return info, nil
}

// EstimateUV derives a rough UV index from the sky condition and the hour of
// day. It is a heuristic, not a measurement.
func EstimateUV(condition, timeOfDay string) (int, string) {
	hour := 12
	if h, _, found := strings.Cut(timeOfDay, ":"); found {
		if parsed, err := strconv.Atoi(h); err == nil {
			hour = parsed
		}
	}

	lower := strings.ToLower(condition)
	var uv int
	switch {
	case strings.Contains(lower, "clear") || strings.Contains(lower, "sunny"):
		if hour >= 9 && hour <= 15 {
			uv = 9
		} else {
			uv = 4
		}
	case strings.Contains(lower, "cloud") || strings.Contains(lower, "overcast"):
		uv = 3
	case strings.Contains(lower, "rain"):
		uv = 1
	default:
		uv = 5
	}

	switch {
	case hour < 9 || hour > 17:
		uv = int(float64(uv) * 0.3)
		if uv < 1 {
			uv = 1
		}
	case hour <= 11 || hour >= 14:
		uv = int(float64(uv) * 0.7)
	}

	return uv, riskLevel(uv)
}

func riskLevel(uv int) string {
	switch {
	case uv <= 0:
		return "None"
	case uv <= 2:
		return "Low"
	case uv <= 4:
		return "Moderate"
	case uv <= 6:
		return "High"
	case uv <= 8:
		return "Very High"
	default:
		return "Extreme"
	}
}

func renderSunInfo(info SunInfo) string {
	var b strings.Builder
	b.WriteString("☀️ SUNRISE/SUNSET & UV INFO\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")
	fmt.Fprintf(&b, "\U0001F305 Sunrise: %s\n", info.Sunrise)
	fmt.Fprintf(&b, "\U0001F307 Sunset:  %s\n", info.Sunset)
	fmt.Fprintf(&b, "\U0001F4A1 Daylight: %dh %dm\n\n", info.DaylightHours, info.DaylightMinutes)
	fmt.Fprintf(&b, "☀️ UV Index: %d/10\n", info.UVIndex)
	fmt.Fprintf(&b, "⚠️ Risk Level: %s\n\n", info.UVRisk)

	switch {
	case info.UVIndex <= 2:
		b.WriteString("✅ Low risk, sunscreen optional\n")
	case info.UVIndex <= 5:
		b.WriteString("\U0001F7E1 Moderate risk, wear SPF 30+ sunscreen\n")
	case info.UVIndex <= 7:
		b.WriteString("\U0001F534 High risk, wear SPF 50+ sunscreen and limit time\n")
	default:
		b.WriteString("\U0001F6A8 Very high risk, stay in shade during peak hours\n")
	}
	return b.String()
}
