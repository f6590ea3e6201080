package bootstrap

import (
	"context"
	"log/slog"

	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/handlers"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthFunc adapts a plain ping function to handlers.HealthChecker.
type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

// routeDeps is what the router needs from the rest of the application.
type routeDeps struct {
	validator   middleware.AccessTokenValidator
	healthCheck map[string]handlers.HealthChecker
	metrics     metrics.Recorder
	rateLimiter gin.HandlerFunc
}

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(cfg *config.Config, logger *slog.Logger, deps routeDeps) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(deps.metrics))
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", handlers.NewHealthHandler(deps.healthCheck, 0).Health)

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg, logger)

	// Token validation endpoint
	validation := handlers.NewValidationHandler(deps.validator)
	r.GET("/connect/accesstokenvalidation", deps.rateLimiter, validation.AccessTokenValidation)

	// Bearer protected API
	api := r.Group("/api")
	api.Use(middleware.RequireAccessToken(deps.validator, ""))
	{
		api.GET("/me", handlers.Me)
	}

	logger.Info("Token validation server configured",
		"addr", cfg.ServerAddr,
		"reference_store", cfg.ReferenceTokenStore,
		"jwt", cfg.HasSigningKeys(),
		"user_service", cfg.UserServiceMode)

	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		logger.Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Info("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupGinMode runs Gin in debug mode only when debug logging is requested
func setupGinMode(cfg *config.Config) {
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
