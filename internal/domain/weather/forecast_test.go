package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func forecastEntry(ts string, temp float64, condition string) Document {
	return Document{
		"dt_txt":  ts,
		"main":    Document{"temp": temp, "humidity": float64(70)},
		"weather": []any{Document{"description": condition, "icon": "01d"}},
		"wind":    Document{"speed": 3.2},
	}
}

func TestAggregateForecastBucketsByDate(t *testing.T) {
	entries := []any{
		forecastEntry("2024-01-01 00:00:00", 10, "clear sky"),
		forecastEntry("2024-01-01 03:00:00", 15, "few clouds"),
		forecastEntry("2024-01-02 00:00:00", -2, "snow"),
	}

	days := AggregateForecast(entries)
	require.Len(t, days, 2)

	require.Equal(t, "2024-01-01", days[0].Date)
	require.Equal(t, 10.0, days[0].MinTemp)
	require.Equal(t, 15.0, days[0].MaxTemp)
	require.Len(t, days[0].Hours, 2)
	require.Equal(t, "00:00", days[0].Hours[0].Time)
	require.Equal(t, "03:00", days[0].Hours[1].Time)

	require.Equal(t, "2024-01-02", days[1].Date)
	require.Equal(t, -2.0, days[1].MinTemp)
	require.Equal(t, -2.0, days[1].MaxTemp)
	require.Len(t, days[1].Hours, 1)
}

func TestAggregateForecastOrdersDaysAscending(t *testing.T) {
	entries := []any{
		forecastEntry("2024-01-03 00:00:00", 5, "mist"),
		forecastEntry("2024-01-01 00:00:00", 7, "mist"),
		forecastEntry("2024-01-02 00:00:00", 6, "mist"),
	}

	days := AggregateForecast(entries)
	require.Len(t, days, 3)
	require.Equal(t, "2024-01-01", days[0].Date)
	require.Equal(t, "2024-01-02", days[1].Date)
	require.Equal(t, "2024-01-03", days[2].Date)
}

func TestAggregateForecastTitleCasesConditions(t *testing.T) {
	days := AggregateForecast([]any{forecastEntry("2024-01-01 09:00:00", 12, "light rain")})
	require.Len(t, days, 1)
	require.Equal(t, []string{"Light Rain"}, days[0].Conditions)
	require.Equal(t, "Light Rain", days[0].Hours[0].Condition)
}

func TestAggregateForecastDeduplicatesConditionsInFirstSeenOrder(t *testing.T) {
	entries := []any{
		forecastEntry("2024-01-01 00:00:00", 10, "light rain"),
		forecastEntry("2024-01-01 03:00:00", 11, "clear sky"),
		forecastEntry("2024-01-01 06:00:00", 12, "light rain"),
		forecastEntry("2024-01-01 09:00:00", 13, "clear sky"),
	}

	days := AggregateForecast(entries)
	require.Len(t, days, 1)
	require.Equal(t, []string{"Light Rain", "Clear Sky"}, days[0].Conditions)
}

func TestAggregateForecastSkipsMalformedEntries(t *testing.T) {
	broken := Document{
		"dt_txt":  "2024-01-01 06:00:00",
		"main":    Document{"humidity": float64(70)}, // no temp
		"weather": []any{Document{"description": "mist", "icon": "50d"}},
		"wind":    Document{"speed": 1.0},
	}
	entries := []any{
		forecastEntry("2024-01-01 00:00:00", 10, "mist"),
		broken,
		"not even an object",
		forecastEntry("2024-01-01 03:00:00", 12, "mist"),
	}

	days := AggregateForecast(entries)
	require.Len(t, days, 1)
	require.Len(t, days[0].Hours, 2)
	require.Equal(t, 10.0, days[0].MinTemp)
	require.Equal(t, 12.0, days[0].MaxTemp)
}

func TestAggregateForecastEmptyInput(t *testing.T) {
	require.Empty(t, AggregateForecast(nil))
	require.Empty(t, AggregateForecast([]any{}))
}

func TestAggregateForecastIsIdempotent(t *testing.T) {
	entries := []any{
		forecastEntry("2024-01-01 00:00:00", 10, "light rain"),
		forecastEntry("2024-01-01 03:00:00", 15, "clear sky"),
		forecastEntry("2024-01-02 00:00:00", -2, "snow"),
	}

	first := AggregateForecast(entries)
	second := AggregateForecast(entries)
	require.Equal(t, first, second)
}

func TestForecastDaySummary(t *testing.T) {
	days := AggregateForecast([]any{
		forecastEntry("2024-01-01 00:00:00", 10, "light rain"),
		forecastEntry("2024-01-01 03:00:00", 15, "clear sky"),
	})
	require.Len(t, days, 1)
	require.Equal(t, "2024-01-01: 10°-15° | Light Rain, Clear Sky", days[0].Summary())
}

func TestForecastDaySummaryNoData(t *testing.T) {
	day := *newForecastDay("2024-01-01")
	require.False(t, day.HasData())
	require.Equal(t, "2024-01-01: No data", day.Summary())
}

func TestForecastDayDetails(t *testing.T) {
	days := AggregateForecast([]any{forecastEntry("2024-01-01 09:00:00", 12.5, "light rain")})
	details := days[0].Details()
	require.Contains(t, details, "2024-01-01")
	require.Contains(t, details, "09:00")
	require.Contains(t, details, "12.5°")
	require.Contains(t, details, "70%")
	require.Contains(t, details, "Light Rain")
}

func TestRenderForecastDetailUnknownDate(t *testing.T) {
	days := AggregateForecast([]any{forecastEntry("2024-01-01 09:00:00", 12, "mist")})
	require.Equal(t, "No data for 2024-01-09", RenderForecastDetail(days, "2024-01-09"))
}

func TestRenderForecastSummary(t *testing.T) {
	days := AggregateForecast([]any{
		forecastEntry("2024-01-01 00:00:00", 10, "mist"),
		forecastEntry("2024-01-02 00:00:00", 11, "mist"),
	})

	text := RenderForecastSummary(days)
	require.Contains(t, text, "[Day 1] 2024-01-01")
	require.Contains(t, text, "[Day 2] 2024-01-02")

	require.Equal(t, "No forecast data available", RenderForecastSummary(nil))
}
