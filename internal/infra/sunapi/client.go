package sunapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weathermate/weather-mate/internal/domain/suninfo"
	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

const defaultBaseURL = "https://api.sunrise-sunset.org/json"

// Client fetches sunrise/sunset times from api.sunrise-sunset.org.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

var _ suninfo.SunClient = (*Client)(nil)

type apiResponse struct {
	Status  string     `json:"status"`
	Results apiResults `json:"results"`
}

type apiResults struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// FetchSunTimes retrieves sunrise and sunset instants in UTC. The API is
// asked for unformatted output so the timestamps parse as RFC 3339.
func (c *Client) FetchSunTimes(ctx context.Context, lat, lon float64) (suninfo.SunTimes, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("formatted", "0")
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return suninfo.SunTimes{}, apperrors.Wrap("network_error", "build sun request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return suninfo.SunTimes{}, apperrors.Wrap("upstream_timeout", "sun request timed out", err)
		}
		return suninfo.SunTimes{}, apperrors.Wrap("no_connection", "sun request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return suninfo.SunTimes{}, apperrors.Wrap("upstream_error", fmt.Sprintf("sun api error: status=%d", resp.StatusCode), nil)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return suninfo.SunTimes{}, apperrors.Wrap("invalid_response", "decode sun response", err)
	}
	if raw.Status != "OK" {
		return suninfo.SunTimes{}, apperrors.Wrap("upstream_error", fmt.Sprintf("sun api status: %s", raw.Status), nil)
	}

	sunrise, err := time.Parse(time.RFC3339, raw.Results.Sunrise)
	if err != nil {
		return suninfo.SunTimes{}, apperrors.Wrap("invalid_response", "parse sunrise time", err)
	}
	sunset, err := time.Parse(time.RFC3339, raw.Results.Sunset)
	if err != nil {
		return suninfo.SunTimes{}, apperrors.Wrap("invalid_response", "parse sunset time", err)
	}

	return suninfo.SunTimes{Sunrise: sunrise, Sunset: sunset}, nil
}
