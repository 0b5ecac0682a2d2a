package weather

import "math"

// The validators below confirm that a decoded JSON document has exactly the
// shape the rest of the domain consumes. They check only the fields actually
// used downstream, so new fields added by the API never cause rejections.
// All of them fail fast on the first violation.

// Document is a decoded JSON object as produced by encoding/json.
type Document = map[string]any

// ValidateCoordinates checks a current-weather document for a usable coord
// block and returns the typed coordinates.
func ValidateCoordinates(doc any) (Coordinates, error) {
	root, err := requireObject(doc, "")
	if err != nil {
		return Coordinates{}, err
	}
	coordValue, err := getKey(root, "coord", "")
	if err != nil {
		return Coordinates{}, err
	}
	coord, err := requireObject(coordValue, "coord")
	if err != nil {
		return Coordinates{}, err
	}

	lat, err := requireNumberKey(coord, "lat", "coord")
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := requireNumberKey(coord, "lon", "coord")
	if err != nil {
		return Coordinates{}, err
	}

	if lat < -90 || lat > 90 {
		return Coordinates{}, outOfRange("coord.lat", "latitude out of range")
	}
	if lon < -180 || lon > 180 {
		return Coordinates{}, outOfRange("coord.lon", "longitude out of range")
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ValidateCurrentWeather checks a current-weather document and returns the
// typed reading.
func ValidateCurrentWeather(doc any) (CurrentWeather, error) {
	root, err := requireObject(doc, "")
	if err != nil {
		return CurrentWeather{}, err
	}

	main, err := requireObjectKey(root, "main", "")
	if err != nil {
		return CurrentWeather{}, err
	}
	temp, err := requireNumberKey(main, "temp", "main")
	if err != nil {
		return CurrentWeather{}, err
	}
	humidity, err := requireNumberKey(main, "humidity", "main")
	if err != nil {
		return CurrentWeather{}, err
	}

	condition, icon, err := extractConditionAndIcon(root, "")
	if err != nil {
		return CurrentWeather{}, err
	}

	wind, err := requireObjectKey(root, "wind", "")
	if err != nil {
		return CurrentWeather{}, err
	}
	speed, err := requireNumberKey(wind, "speed", "wind")
	if err != nil {
		return CurrentWeather{}, err
	}

	return CurrentWeather{
		Temperature: temp,
		Condition:   condition,
		Humidity:    int(humidity),
		WindSpeed:   speed,
		IconCode:    icon,
	}, nil
}

// ValidateAirQuality checks an air pollution document and returns the typed
// reading. Index values outside 1..5 are a validation failure, not clamped.
func ValidateAirQuality(doc any) (AirQuality, error) {
	root, err := requireObject(doc, "")
	if err != nil {
		return AirQuality{}, err
	}
	list, err := requireNonEmptyListKey(root, "list", "")
	if err != nil {
		return AirQuality{}, err
	}
	item, err := requireObject(list[0], "list[0]")
	if err != nil {
		return AirQuality{}, err
	}
	main, err := requireObjectKey(item, "main", "list[0]")
	if err != nil {
		return AirQuality{}, err
	}
	aqi, err := requireIntegerKey(main, "aqi", "list[0].main")
	if err != nil {
		return AirQuality{}, err
	}

	level, err := AQILevelFromValue(aqi)
	if err != nil {
		return AirQuality{}, outOfRange("list[0].main.aqi", err.Error())
	}
	return AirQuality{Level: level, Description: level.Description()}, nil
}

// ValidateForecast checks a 5-day forecast document and returns its raw entry
// list. Only the first element is used as the structural template; the rest
// are validated lazily during aggregation so one malformed entry cannot sink
// an otherwise usable forecast.
func ValidateForecast(doc any) ([]any, error) {
	root, err := requireObject(doc, "")
	if err != nil {
		return nil, err
	}
	list, err := requireNonEmptyListKey(root, "list", "")
	if err != nil {
		return nil, err
	}

	first, err := requireObject(list[0], "list[0]")
	if err != nil {
		return nil, err
	}
	if _, err := requireStringKey(first, "dt_txt", "list[0]"); err != nil {
		return nil, err
	}
	main, err := requireObjectKey(first, "main", "list[0]")
	if err != nil {
		return nil, err
	}
	if _, err := requireNumberKey(main, "temp", "list[0].main"); err != nil {
		return nil, err
	}
	if _, _, err := extractConditionAndIcon(first, "list[0]"); err != nil {
		return nil, err
	}
	return list, nil
}

// extractConditionAndIcon validates the weather array shared by the current
// and forecast documents and returns description and icon of its first item.
func extractConditionAndIcon(doc Document, path string) (string, string, error) {
	items, err := requireNonEmptyListKey(doc, "weather", path)
	if err != nil {
		return "", "", err
	}
	itemPath := joinPath(path, "weather") + "[0]"
	item, err := requireObject(items[0], itemPath)
	if err != nil {
		return "", "", err
	}
	description, err := requireStringKey(item, "description", itemPath)
	if err != nil {
		return "", "", err
	}
	icon, err := requireStringKey(item, "icon", itemPath)
	if err != nil {
		return "", "", err
	}
	return description, icon, nil
}

// ---- primitive assertions ----

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func requireObject(v any, path string) (Document, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, wrongType(path, "object", v)
	}
	return obj, nil
}

func getKey(doc Document, key, path string) (any, error) {
	v, ok := doc[key]
	if !ok {
		return nil, missingField(joinPath(path, key))
	}
	return v, nil
}

func requireObjectKey(doc Document, key, path string) (Document, error) {
	v, err := getKey(doc, key, path)
	if err != nil {
		return nil, err
	}
	return requireObject(v, joinPath(path, key))
}

func requireNumberKey(doc Document, key, path string) (float64, error) {
	v, err := getKey(doc, key, path)
	if err != nil {
		return 0, err
	}
	return requireNumber(v, joinPath(path, key))
}

func requireNumber(v any, path string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, wrongType(path, "number", v)
	}
}

// requireIntegerKey accepts whole-valued numbers only. encoding/json decodes
// every JSON number as float64, so 3 arrives as 3.0 and must pass.
func requireIntegerKey(doc Document, key, path string) (int, error) {
	fullPath := joinPath(path, key)
	n, err := requireNumberKey(doc, key, path)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, wrongType(fullPath, "integer", n)
	}
	return int(n), nil
}

func requireStringKey(doc Document, key, path string) (string, error) {
	v, err := getKey(doc, key, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(joinPath(path, key), "string", v)
	}
	return s, nil
}

func requireNonEmptyListKey(doc Document, key, path string) ([]any, error) {
	v, err := getKey(doc, key, path)
	if err != nil {
		return nil, err
	}
	fullPath := joinPath(path, key)
	list, ok := v.([]any)
	if !ok {
		return nil, wrongType(fullPath, "array", v)
	}
	if len(list) == 0 {
		return nil, emptyCollection(fullPath)
	}
	return list, nil
}
