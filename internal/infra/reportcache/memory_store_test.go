package reportcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weathermate/weather-mate/internal/domain/weather"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.GetReport(ctx, "oslo|metric")
	require.NoError(t, err)
	require.False(t, ok)

	report := weather.Report{City: "Oslo", Units: "metric", Text: "report body"}
	require.NoError(t, store.SaveReport(ctx, "oslo|metric", report, 0))

	got, ok, err := store.GetReport(ctx, "oslo|metric")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, report, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveReport(ctx, "oslo|metric", weather.Report{City: "Oslo"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.GetReport(ctx, "oslo|metric")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreIgnoresEmptyKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveReport(ctx, "", weather.Report{City: "Oslo"}, 0))
	_, ok, err := store.GetReport(ctx, "")
	require.NoError(t, err)
	require.False(t, ok)
}
