package weather

import "time"

// Coordinates is a validated geographic position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentWeather is the validated projection of one current-conditions document.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	IconCode    string  `json:"iconCode"`
}

// AirQuality pairs the numeric index with its fixed description. The level is
// the sole source of truth; the description is always derived from it.
type AirQuality struct {
	Level       AQILevel `json:"level"`
	Description string   `json:"description"`
}

// ForecastEntry is one 3-hour observation point extracted from the raw list.
type ForecastEntry struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// HourlyEntry is one row of a day's drill-down view.
type HourlyEntry struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ForecastDay buckets every forecast entry sharing a calendar date.
// MinTemp/MaxTemp hold +Inf/-Inf sentinels until the first entry lands, which
// is how a "no data" day is recognized.
type ForecastDay struct {
	Date       string        `json:"date"`
	Hours      []HourlyEntry `json:"hours"`
	MinTemp    float64       `json:"minTemp"`
	MaxTemp    float64       `json:"maxTemp"`
	Conditions []string      `json:"conditions"`
}

// HasData reports whether at least one hourly entry was recorded for the day.
func (d ForecastDay) HasData() bool {
	return len(d.Hours) > 0
}

// Snapshot bundles the per-city data used by the comparison feature.
type Snapshot struct {
	City        string         `json:"city"`
	Coordinates Coordinates    `json:"coordinates"`
	Current     CurrentWeather `json:"current"`
	AirQuality  string         `json:"airQuality"`
}

// Report is the full display-ready answer for one city.
type Report struct {
	City       string        `json:"city"`
	Units      string        `json:"units"`
	Current    CurrentWeather `json:"current"`
	AirQuality string        `json:"airQuality"`
	Forecast   []ForecastDay `json:"forecast,omitempty"`
	Text       string        `json:"text"`
	FetchedAt  time.Time     `json:"fetchedAt"`
}

// Config wires runtime knobs for the weather domain.
type Config struct {
	DefaultUnits string
	CacheTTL     time.Duration
}
