package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weathermate/weather-mate/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(nil),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/weather", handler.Weather)
		api.GET("/forecast", handler.Forecast)
		api.GET("/forecast/detail", handler.ForecastDetail)
		api.GET("/airquality", handler.AirQuality)
		api.GET("/sun", handler.Sun)
		api.POST("/compare", handler.Compare)
		api.GET("/stats", handler.Stats)

		api.GET("/history/:city/trend", handler.Trend)
		api.GET("/searches", handler.RecentSearches)
		api.GET("/favorites", handler.Favorites)
		api.POST("/favorites", handler.AddFavorite)
		api.DELETE("/favorites/:city", handler.RemoveFavorite)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
