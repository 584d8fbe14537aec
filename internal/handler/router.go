package handler

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/medschedule/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/medschedule/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config   *config.Config
	Services v1.Services
	Tokens   middleware.TokenValidator
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	// Ping reports database liveness for /healthz. Optional.
	Ping     func() error
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Tracing(d.Config.Tracing.ServiceName),
		middleware.Logger(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.CORS(d.Config.CORS),
	)

	r.GET("/healthz", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": d.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler(d.Gatherer)))

	api := r.Group("/api/v1", middleware.RateLimit(d.Config.RateLimit.RequestsPerSecond, d.Config.RateLimit.BurstSize))
	v1.Register(api, d.Services, d.Tokens, middleware.RateLimitPerMinute(d.Config.RateLimit.BookingRequestsPerMinute))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: "route not found"})
	})
	return r
}
