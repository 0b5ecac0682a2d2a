package sunapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

func TestFetchSunTimes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": {
				"sunrise": "2024-06-21T02:30:00+00:00",
				"sunset": "2024-06-21T20:45:00+00:00"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	times, err := client.FetchSunTimes(context.Background(), 59.91, 10.75)
	require.NoError(t, err)
	require.Contains(t, gotQuery, "lat=59.91")
	require.Contains(t, gotQuery, "lng=10.75")
	require.Contains(t, gotQuery, "formatted=0")
	require.Equal(t, time.Date(2024, 6, 21, 2, 30, 0, 0, time.UTC), times.Sunrise.UTC())
	require.Equal(t, time.Date(2024, 6, 21, 20, 45, 0, 0, time.UTC), times.Sunset.UTC())
}

func TestFetchSunTimesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"INVALID_REQUEST","results":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchSunTimes(context.Background(), 0, 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "upstream_error"))
}

func TestFetchSunTimesBadTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":{"sunrise":"7:30:00 AM","sunset":"8:45:00 PM"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchSunTimes(context.Background(), 0, 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_response"))
}

func TestFetchSunTimesConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	_, err := client.FetchSunTimes(context.Background(), 0, 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "no_connection"))
}
