package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weathermate/weather-mate/internal/domain/weather"
	apperrors "github.com/weathermate/weather-mate/pkg/errors"
	"github.com/weathermate/weather-mate/pkg/metrics"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client talks to the OpenWeatherMap REST API. It returns raw decoded
// documents so the domain layer can validate shape and ranges itself.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	usage      *metrics.UpstreamUsage
}

// NewClient builds an API client. An empty baseURL selects the public
// OpenWeatherMap endpoint.
func NewClient(baseURL, apiKey string, usage *metrics.UpstreamUsage) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	if usage == nil {
		usage = metrics.NewUpstreamUsage()
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		usage: usage,
	}
}

var _ weather.APIClient = (*Client)(nil)

// FetchCoordinates resolves a city name to its coordinates. OpenWeatherMap
// embeds them in the current-weather payload, so this hits /weather.
func (c *Client) FetchCoordinates(ctx context.Context, city string) (any, error) {
	params := url.Values{}
	params.Set("q", city)
	return c.get(ctx, "/weather", params)
}

// FetchCurrentWeather retrieves current conditions for a city.
func (c *Client) FetchCurrentWeather(ctx context.Context, city, units string) (any, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", units)
	return c.get(ctx, "/weather", params)
}

// FetchAirQuality retrieves the air pollution index for a coordinate pair.
func (c *Client) FetchAirQuality(ctx context.Context, lat, lon float64) (any, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.get(ctx, "/air_pollution", params)
}

// FetchForecast retrieves the 5-day/3-hour forecast for a city.
func (c *Client) FetchForecast(ctx context.Context, city, units string) (any, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", units)
	return c.get(ctx, "/forecast", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (doc any, err error) {
	defer func() {
		c.usage.RecordRequest(err != nil)
	}()

	params.Set("appid", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap("network_error", "build weather request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap("network_error", "read weather response", err)
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.Wrap("invalid_response", "decode weather response", err)
	}
	return doc, nil
}

func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.Wrap("upstream_timeout", "weather request timed out", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap("upstream_timeout", "weather request timed out", err)
	}
	return apperrors.Wrap("no_connection", "weather request failed", err)
}

func classifyStatus(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	detail := upstreamMessage(payload)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.Wrap("invalid_api_key", "weather api rejected the key", nil)
	case http.StatusNotFound:
		return apperrors.Wrap("city_not_found", "city not found", nil)
	case http.StatusTooManyRequests:
		return apperrors.Wrap("rate_limited", "weather api rate limit exceeded", nil)
	default:
		return apperrors.Wrap("upstream_error", fmt.Sprintf("weather api error: status=%d message=%s", resp.StatusCode, detail), nil)
	}
}

// upstreamMessage pulls the "message" field out of an OpenWeatherMap error
// body, falling back to the raw payload.
func upstreamMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(payload))
}
