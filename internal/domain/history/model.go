package history

import "time"

// Observation is one recorded weather reading for a city.
type Observation struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Condition   string    `json:"condition"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// TrendStats summarizes the recorded readings for a city.
type TrendStats struct {
	City         string    `json:"city"`
	Count        int       `json:"count"`
	MinTemp      float64   `json:"minTemp"`
	MaxTemp      float64   `json:"maxTemp"`
	AvgTemp      float64   `json:"avgTemp"`
	Temperatures []float64 `json:"temperatures"`
}

// Config bounds how much history is retained.
type Config struct {
	MaxObservations int
	MaxRecent       int
}
