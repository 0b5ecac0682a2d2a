package weather

import "fmt"

// AQILevel is the OpenWeatherMap air quality index, an integer 1 through 5.
type AQILevel int

const (
	AQIGood AQILevel = iota + 1
	AQIFair
	AQIModerate
	AQIPoor
	AQIVeryPoor
)

// aqiDescriptions is the single owner of the level-to-label mapping.
var aqiDescriptions = map[AQILevel]string{
	AQIGood:     "Good",
	AQIFair:     "Fair",
	AQIModerate: "Moderate",
	AQIPoor:     "Poor",
	AQIVeryPoor: "Very Poor",
}

// AQILevelFromValue converts a raw index into a typed level. Values outside
// 1..5 are rejected, never clamped.
func AQILevelFromValue(value int) (AQILevel, error) {
	level := AQILevel(value)
	if _, ok := aqiDescriptions[level]; !ok {
		return 0, fmt.Errorf("invalid AQI value: %d, must be 1-5", value)
	}
	return level, nil
}

// Description returns the fixed label for the level.
func (l AQILevel) Description() string {
	if desc, ok := aqiDescriptions[l]; ok {
		return desc
	}
	return "Unknown"
}

// Badge returns the emoji used next to the level in rendered output.
func (l AQILevel) Badge() string {
	switch l {
	case AQIGood:
		return "\U0001F7E2"
	case AQIFair:
		return "\U0001F7E1"
	case AQIModerate:
		return "\U0001F7E0"
	case AQIPoor:
		return "\U0001F534"
	case AQIVeryPoor:
		return "⚫"
	default:
		return "❓"
	}
}

// HealthAdvice returns the recommendation text for the level.
func (l AQILevel) HealthAdvice() string {
	switch l {
	case AQIGood:
		return "Air quality is good. Enjoy outdoor activities, no health concerns."
	case AQIFair:
		return "Air quality is acceptable. Outdoor activities are fine; sensitive groups may notice mild effects."
	case AQIModerate:
		return "Moderate air quality. Sensitive groups (children, elderly) should limit outdoor activities."
	case AQIPoor:
		return "Poor air quality. Everyone should reduce prolonged outdoor activities and consider N95 masks outside."
	case AQIVeryPoor:
		return "Very poor air quality, health alert. Stay indoors if possible, keep windows closed and use air purifiers."
	default:
		return "Level unknown"
	}
}

// AffectedGroups describes which populations the level puts at risk.
func (l AQILevel) AffectedGroups() string {
	switch l {
	case AQIGood:
		return "No sensitive groups affected"
	case AQIFair:
		return "Unusually sensitive people may be affected"
	case AQIModerate:
		return "Children, the elderly, and people with respiratory or heart disease are at risk"
	case AQIPoor:
		return "Everyone is at risk; members of sensitive groups are more vulnerable"
	case AQIVeryPoor:
		return "Everyone is at high risk, serious health effects expected"
	default:
		return "Unknown"
	}
}
