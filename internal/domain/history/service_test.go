package history_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weathermate/weather-mate/internal/domain/history"
	"github.com/weathermate/weather-mate/internal/infra/historyrepo"
	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

func newServiceUnderTest() history.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return history.NewService(history.Config{MaxObservations: 30, MaxRecent: 10}, historyrepo.NewMemoryRepository(), logger)
}

func TestRecordObservationAndTrend(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	require.NoError(t, svc.RecordObservation(ctx, "London", 10, "Light Rain"))
	require.NoError(t, svc.RecordObservation(ctx, "London", 14, "Clear Sky"))
	require.NoError(t, svc.RecordObservation(ctx, "London", 12, "Mist"))

	stats, err := svc.Trend(ctx, "London")
	require.NoError(t, err)
	require.Equal(t, 3, stats.Count)
	require.Equal(t, 10.0, stats.MinTemp)
	require.Equal(t, 14.0, stats.MaxTemp)
	require.Equal(t, 12.0, stats.AvgTemp)
	require.Equal(t, []float64{10, 14, 12}, stats.Temperatures)
}

func TestTrendUnknownCity(t *testing.T) {
	svc := newServiceUnderTest()

	stats, err := svc.Trend(context.Background(), "Nowhere")
	require.NoError(t, err)
	require.Zero(t, stats.Count)
	require.Empty(t, stats.Temperatures)
}

func TestObservationsAreCapped(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	for i := 0; i < 40; i++ {
		require.NoError(t, svc.RecordObservation(ctx, "London", float64(i), "Mist"))
	}

	stats, err := svc.Trend(ctx, "London")
	require.NoError(t, err)
	require.Equal(t, 30, stats.Count)
	// Oldest records are dropped first.
	require.Equal(t, 10.0, stats.MinTemp)
	require.Equal(t, 39.0, stats.MaxTemp)
}

func TestRecentSearchesMoveToFront(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	require.NoError(t, svc.RecordSearch(ctx, "London"))
	require.NoError(t, svc.RecordSearch(ctx, "Paris"))
	require.NoError(t, svc.RecordSearch(ctx, "Tokyo"))
	require.NoError(t, svc.RecordSearch(ctx, "London"))

	recent, err := svc.RecentSearches(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"London", "Tokyo", "Paris"}, recent)
}

func TestRecentSearchesAreCapped(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, svc.RecordSearch(ctx, fmt.Sprintf("City %d", i)))
	}

	recent, err := svc.RecentSearches(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	require.Equal(t, "City 14", recent[0])
}

func TestFavorites(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "London"))
	require.NoError(t, svc.AddFavorite(ctx, "Paris"))
	require.NoError(t, svc.AddFavorite(ctx, "London")) // no duplicate

	favorites, err := svc.Favorites(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"London", "Paris"}, favorites)

	ok, err := svc.IsFavorite(ctx, "london")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.RemoveFavorite(ctx, "London"))
	favorites, err = svc.Favorites(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Paris"}, favorites)
}

func TestEmptyCityRejected(t *testing.T) {
	svc := newServiceUnderTest()
	ctx := context.Background()

	require.True(t, apperrors.IsCode(svc.RecordObservation(ctx, " ", 10, "Mist"), "invalid_input"))
	require.True(t, apperrors.IsCode(svc.RecordSearch(ctx, ""), "invalid_input"))
	_, err := svc.Trend(ctx, "")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}
