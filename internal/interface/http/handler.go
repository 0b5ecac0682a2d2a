package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weathermate/weather-mate/internal/domain/comparison"
	"github.com/weathermate/weather-mate/internal/domain/history"
	"github.com/weathermate/weather-mate/internal/domain/suninfo"
	"github.com/weathermate/weather-mate/internal/domain/weather"
	"github.com/weathermate/weather-mate/pkg/metrics"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc    weather.Service
	historySvc    history.Service
	comparisonSvc comparison.Service
	sunSvc        suninfo.Service
	usage         *metrics.UpstreamUsage
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, historySvc history.Service, comparisonSvc comparison.Service, sunSvc suninfo.Service, usage *metrics.UpstreamUsage, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc:    weatherSvc,
		historySvc:    historySvc,
		comparisonSvc: comparisonSvc,
		sunSvc:        sunSvc,
		usage:         usage,
		logger:        logger.With("component", "http.handler"),
	}
}

// Weather returns the full weather report for a city.
func (h *Handler) Weather(c *gin.Context) {
	city := c.Query("city")
	units := c.Query("units")

	report, err := h.weatherSvc.Report(c.Request.Context(), city, units)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "weather_failed"))
		return
	}

	if recErr := h.historySvc.RecordSearch(c.Request.Context(), report.City); recErr != nil {
		h.logger.Warn("record search failed", "city", report.City, "error", recErr)
	}

	c.JSON(http.StatusOK, report)
}

// Forecast returns the aggregated per-day forecast for a city.
func (h *Handler) Forecast(c *gin.Context) {
	days, err := h.weatherSvc.Forecast(c.Request.Context(), c.Query("city"), c.Query("units"))
	if err != nil {
		abortWithError(c, domainHTTPError(err, "forecast_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ForecastDetail returns the hour-by-hour breakdown for one forecast day.
func (h *Handler) ForecastDetail(c *gin.Context) {
	detail, err := h.weatherSvc.ForecastDetail(c.Request.Context(), c.Query("city"), c.Query("date"), c.Query("units"))
	if err != nil {
		abortWithError(c, domainHTTPError(err, "forecast_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "detail": detail})
}

// AirQuality returns the air quality index for a coordinate pair.
func (h *Handler) AirQuality(c *gin.Context) {
	lat, lon, err := coordinateParams(c)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	aq, err := h.weatherSvc.AirQuality(c.Request.Context(), lat, lon)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "airquality_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"level":          int(aq.Level),
		"description":    aq.Description,
		"badge":          aq.Level.Badge(),
		"healthAdvice":   aq.Level.HealthAdvice(),
		"affectedGroups": aq.Level.AffectedGroups(),
	})
}

// Sun returns sunrise/sunset times and an estimated UV index.
func (h *Handler) Sun(c *gin.Context) {
	lat, lon, err := coordinateParams(c)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	info, err := h.sunSvc.SunInfo(c.Request.Context(), lat, lon, c.Query("condition"))
	if err != nil {
		abortWithError(c, domainHTTPError(err, "sun_failed"))
		return
	}
	c.JSON(http.StatusOK, info)
}

// Compare fetches several cities side by side.
func (h *Handler) Compare(c *gin.Context) {
	var req comparison.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.comparisonSvc.Compare(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainHTTPError(err, "compare_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Trend returns temperature statistics for a city's recorded observations.
func (h *Handler) Trend(c *gin.Context) {
	stats, err := h.historySvc.Trend(c.Request.Context(), c.Param("city"))
	if err != nil {
		abortWithError(c, domainHTTPError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecentSearches returns the most recently looked up cities.
func (h *Handler) RecentSearches(c *gin.Context) {
	cities, err := h.historySvc.RecentSearches(c.Request.Context())
	if err != nil {
		abortWithError(c, domainHTTPError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// Favorites returns the favorite city list.
func (h *Handler) Favorites(c *gin.Context) {
	cities, err := h.historySvc.Favorites(c.Request.Context())
	if err != nil {
		abortWithError(c, domainHTTPError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// AddFavorite stores a city on the favorite list.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req struct {
		City string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if err := h.historySvc.AddFavorite(c.Request.Context(), req.City); err != nil {
		abortWithError(c, domainHTTPError(err, "history_failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": strings.TrimSpace(req.City)})
}

// RemoveFavorite removes a city from the favorite list.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.historySvc.RemoveFavorite(c.Request.Context(), c.Param("city")); err != nil {
		abortWithError(c, domainHTTPError(err, "history_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats exposes the upstream usage counters.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.usage.Snapshot())
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func coordinateParams(c *gin.Context) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("query parameter lat must be a number")
	}
	lon, err = strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("query parameter lon must be a number")
	}
	return lat, lon, nil
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
