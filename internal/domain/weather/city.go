package weather

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	minCityNameLength = 2
	maxCityNameLength = 100
)

// ValidateCityName screens user-supplied city input before it ever reaches
// the upstream API. International names are allowed, any Unicode letter
// counts as a letter.
func ValidateCityName(city string) error {
	if strings.TrimSpace(city) == "" {
		return errors.New("city name cannot be empty")
	}
	runes := []rune(city)
	if len(runes) < minCityNameLength {
		return fmt.Errorf("city name must be at least %d characters long", minCityNameLength)
	}
	if len(runes) > maxCityNameLength {
		return fmt.Errorf("city name is too long (max %d characters)", maxCityNameLength)
	}

	var invalid []string
	letters := 0
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
		case strings.ContainsRune(" -',.", r):
		default:
			invalid = appendUnique(invalid, string(r))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid characters detected: %s", strings.Join(invalid, ", "))
	}
	if letters == 0 {
		return errors.New("city name must contain at least one letter")
	}
	if isPurelyNumeric(city) {
		return errors.New("city name cannot be purely numeric")
	}
	if float64(letters) < float64(len([]rune(strings.TrimSpace(city))))*0.5 {
		return errors.New("city name contains too many special characters")
	}
	return nil
}

func isPurelyNumeric(city string) bool {
	stripped := strings.NewReplacer(" ", "", "-", "", "'", "").Replace(city)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func appendUnique(items []string, v string) []string {
	for _, item := range items {
		if item == v {
			return items
		}
	}
	return append(items, v)
}
