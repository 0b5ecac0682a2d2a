package weather

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AggregateForecast buckets raw 3-hour forecast entries into per-day
// summaries. Entries that fail field extraction are skipped, a partial
// forecast beats no forecast. The result is ordered by ascending date string,
// which is chronological because dates are zero-padded ISO YYYY-MM-DD.
func AggregateForecast(entries []any) []ForecastDay {
	days := make(map[string]*ForecastDay)
	caser := cases.Title(language.English)

	for _, raw := range entries {
		entry, err := parseForecastEntry(raw)
		if err != nil {
			continue
		}
		date, clock, ok := splitTimestamp(entry.Timestamp)
		if !ok {
			continue
		}

		day, exists := days[date]
		if !exists {
			day = newForecastDay(date)
			days[date] = day
		}
		day.addHourly(HourlyEntry{
			Time:        clock,
			Temperature: entry.Temperature,
			Condition:   caser.String(entry.Condition),
			Humidity:    entry.Humidity,
			WindSpeed:   entry.WindSpeed,
		})
	}

	out := make([]ForecastDay, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func newForecastDay(date string) *ForecastDay {
	return &ForecastDay{
		Date:    date,
		MinTemp: math.Inf(1),
		MaxTemp: math.Inf(-1),
	}
}

func (d *ForecastDay) addHourly(h HourlyEntry) {
	d.Hours = append(d.Hours, h)
	d.MinTemp = math.Min(d.MinTemp, h.Temperature)
	d.MaxTemp = math.Max(d.MaxTemp, h.Temperature)

	// Dedup is case-sensitive on the title-cased string, first-seen order.
	for _, c := range d.Conditions {
		if c == h.Condition {
			return
		}
	}
	d.Conditions = append(d.Conditions, h.Condition)
}

// parseForecastEntry extracts the fields consumed downstream from one raw
// list element. Unlike the eager template check in ValidateForecast, failures
// here only disqualify the single entry.
func parseForecastEntry(raw any) (ForecastEntry, error) {
	doc, err := requireObject(raw, "")
	if err != nil {
		return ForecastEntry{}, err
	}
	ts, err := requireStringKey(doc, "dt_txt", "")
	if err != nil {
		return ForecastEntry{}, err
	}
	main, err := requireObjectKey(doc, "main", "")
	if err != nil {
		return ForecastEntry{}, err
	}
	temp, err := requireNumberKey(main, "temp", "main")
	if err != nil {
		return ForecastEntry{}, err
	}
	humidity, err := requireNumberKey(main, "humidity", "main")
	if err != nil {
		return ForecastEntry{}, err
	}
	condition, _, err := extractConditionAndIcon(doc, "")
	if err != nil {
		return ForecastEntry{}, err
	}
	wind, err := requireObjectKey(doc, "wind", "")
	if err != nil {
		return ForecastEntry{}, err
	}
	speed, err := requireNumberKey(wind, "speed", "wind")
	if err != nil {
		return ForecastEntry{}, err
	}
	return ForecastEntry{
		Timestamp:   ts,
		Temperature: temp,
		Condition:   condition,
		Humidity:    int(humidity),
		WindSpeed:   speed,
	}, nil
}

// splitTimestamp splits "YYYY-MM-DD HH:MM:SS" into date and HH:MM.
func splitTimestamp(ts string) (date, clock string, ok bool) {
	date, timeOfDay, found := strings.Cut(ts, " ")
	if !found || date == "" || len(timeOfDay) < 5 {
		return "", "", false
	}
	return date, timeOfDay[:5], true
}

// Summary renders the one-line overview for the day.
func (d ForecastDay) Summary() string {
	if !d.HasData() {
		return fmt.Sprintf("%s: No data", d.Date)
	}
	return fmt.Sprintf("%s: %s°-%s° | %s",
		d.Date, formatTemp(d.MinTemp), formatTemp(d.MaxTemp), strings.Join(d.Conditions, ", "))
}

// Details renders the hourly breakdown for the day in input order.
func (d ForecastDay) Details() string {
	if !d.HasData() {
		return fmt.Sprintf("No hourly data for %s", d.Date)
	}

	var b strings.Builder
	divider := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "\n%s\n\U0001F4C5 %s\n%s\n", divider, d.Date, divider)
	for _, hour := range d.Hours {
		fmt.Fprintf(&b, "⏰ %s | \U0001F321️ %s° | \U0001F4A7 %d%% | \U0001F4A8 %.1f\n   Condition: %s\n\n",
			hour.Time, formatTemp(hour.Temperature), hour.Humidity, hour.WindSpeed, hour.Condition)
	}
	return b.String()
}

// RenderForecastSummary renders the all-days overview.
func RenderForecastSummary(days []ForecastDay) string {
	if len(days) == 0 {
		return "No forecast data available"
	}
	var b strings.Builder
	b.WriteString("\n\U0001F4CA 5-DAY FORECAST SUMMARY:\n")
	for i, day := range days {
		fmt.Fprintf(&b, "[Day %d] %s\n", i+1, day.Summary())
	}
	return b.String()
}

// RenderForecastDetail renders the hourly view for one date, or an explicit
// no-data line when the date is absent.
func RenderForecastDetail(days []ForecastDay, date string) string {
	for _, day := range days {
		if day.Date == date {
			return day.Details()
		}
	}
	return fmt.Sprintf("No data for %s", date)
}

func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
