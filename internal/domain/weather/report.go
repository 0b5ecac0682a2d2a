package weather

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

// Unit systems accepted by the upstream API.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

func resolveUnits(units, fallback string) (string, error) {
	units = strings.ToLower(strings.TrimSpace(units))
	if units == "" {
		units = fallback
	}
	if units == "" {
		units = UnitsMetric
	}
	if units != UnitsMetric && units != UnitsImperial {
		return "", apperrors.Wrap("invalid_input", "units must be 'metric' or 'imperial'", nil)
	}
	return units, nil
}

func temperatureUnit(units string) string {
	if units == UnitsImperial {
		return "Fahrenheit"
	}
	return "Celsius"
}

func windUnit(units string) string {
	if units == UnitsImperial {
		return "miles/hour"
	}
	return "meters/second"
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func cacheKey(city, units string) string {
	return strings.ToLower(city) + "|" + units
}

// renderReport builds the plain-text weather report shown to users.
func renderReport(r Report, forecastText string) string {
	return fmt.Sprintf(
		"Current Weather for %s:\n"+
			"Condition: %s\n"+
			"Temperature: %s %s\n"+
			"Humidity: %d%%\n"+
			"Wind Speed: %s %s\n"+
			"Air Quality Index: %s\n\n"+
			"5-Day Forecast:%s",
		r.City,
		r.Current.Condition,
		formatTemp(r.Current.Temperature), temperatureUnit(r.Units),
		r.Current.Humidity,
		formatTemp(r.Current.WindSpeed), windUnit(r.Units),
		r.AirQuality,
		forecastText,
	)
}

// availabilityNote converts an upstream failure into the placeholder shown in
// place of the air quality line.
func availabilityNote(err error) string {
	return "Unavailable (" + failureLabel(err) + ")"
}

// forecastNote is the forecast flavored equivalent of availabilityNote.
func forecastNote(err error) string {
	return "Forecast unavailable (" + failureLabel(err) + ")"
}

func failureLabel(err error) string {
	switch apperrors.CodeOf(err) {
	case "invalid_api_key":
		return "API Key Issue"
	case "rate_limited":
		return "Rate Limited"
	case "upstream_timeout":
		return "Timeout"
	case "no_connection":
		return "No Connection"
	case "network_error":
		return "Network Error"
	case "invalid_response":
		return "Invalid Response"
	default:
		return "API Error"
	}
}
