package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAQILevelFromValue(t *testing.T) {
	for value := 1; value <= 5; value++ {
		level, err := AQILevelFromValue(value)
		require.NoError(t, err)
		require.Equal(t, AQILevel(value), level)
	}

	for _, value := range []int{0, 6, -1, 100} {
		_, err := AQILevelFromValue(value)
		require.Error(t, err, "value %d", value)
	}
}

func TestAQILevelDescriptions(t *testing.T) {
	require.Equal(t, "Good", AQIGood.Description())
	require.Equal(t, "Fair", AQIFair.Description())
	require.Equal(t, "Moderate", AQIModerate.Description())
	require.Equal(t, "Poor", AQIPoor.Description())
	require.Equal(t, "Very Poor", AQIVeryPoor.Description())
	require.Equal(t, "Unknown", AQILevel(9).Description())
}

func TestAQILevelGuidance(t *testing.T) {
	for _, level := range []AQILevel{AQIGood, AQIFair, AQIModerate, AQIPoor, AQIVeryPoor} {
		require.NotEmpty(t, level.HealthAdvice())
		require.NotEmpty(t, level.AffectedGroups())
		require.NotEmpty(t, level.Badge())
	}
}
