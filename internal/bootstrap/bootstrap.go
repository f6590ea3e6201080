package bootstrap

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-authgate/tokenguard/internal/cache"
	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/handlers"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/services"
	"github.com/go-authgate/tokenguard/internal/store"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  clockwork.Clock

	// Core infrastructure
	DB              *store.Store
	MetricsRecorder metrics.Recorder
	MetricsCache    core.Cache[int64]
	RedisClient     *redis.Client
	References      referenceStore
	ClientCache     *cache.MemoryCache[models.Client]

	// Services
	ClientService *services.ClientService
	UserService   *services.UserService
	Validator     *validation.Validator

	// HTTP
	Router *gin.Engine
	Server *http.Server
}

// Run initializes and starts the application. It blocks until SIGINT or
// SIGTERM has been handled and every shutdown job has finished.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app := &Application{
		Config: cfg,
		Logger: logger,
		Clock:  clockwork.NewRealClock(),
	}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		app.closeInfrastructure()
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, Redis and caches
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(ctx, app.Config, app.Clock, app.Logger)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)
	app.MetricsCache = initializeMetricsCache(app.Config, app.Clock)

	// Redis (shared by the reference token cache and the rate limiter)
	app.RedisClient, err = initializeRedisClient(ctx, app.Config, app.Logger)
	if err != nil {
		return err
	}

	// Reference tokens
	app.References, err = initializeReferenceTokenStore(
		ctx,
		app.Config,
		app.DB,
		app.RedisClient,
		app.Clock,
		app.Logger,
	)
	if err != nil {
		return err
	}

	app.ClientCache = cache.NewMemoryCache[models.Client](app.Clock)
	return nil
}

// initializeBusinessLayer sets up services and the validator
func (app *Application) initializeBusinessLayer() error {
	var err error

	app.ClientService = services.NewClientService(
		app.DB,
		app.ClientCache,
		app.Config.ClientCacheTTL,
		app.MetricsRecorder,
	)

	app.UserService, err = initializeUserService(app.Config, app.DB, app.Clock, app.MetricsRecorder)
	if err != nil {
		return err
	}

	verifier, err := initializeVerifier(app.Config, app.Clock)
	if err != nil {
		return err
	}

	app.Validator, err = initializeValidator(
		app.References.store,
		verifier,
		app.ClientService,
		app.UserService,
		app.Clock,
		app.MetricsRecorder,
		app.Logger,
	)
	return err
}

// initializeHTTPLayer sets up the router and server
func (app *Application) initializeHTTPLayer() error {
	rateLimiter, err := setupRateLimiting(app.Config, app.RedisClient, app.Logger)
	if err != nil {
		return err
	}

	app.Router = setupRouter(app.Config, app.Logger, routeDeps{
		validator:   app.Validator,
		healthCheck: app.healthChecks(),
		metrics:     app.MetricsRecorder,
		rateLimiter: rateLimiter,
	})

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Running jobs
	addServerRunningJob(m, app.Server, app.Logger)
	addCacheJanitorJob(m, app.Config, app.References.janitor, app.Logger)
	addCacheJanitorJob(m, app.Config, app.ClientCache, app.Logger)
	addExpiredTokenCleanupJob(m, app.Config, app.DB, app.Clock, app.Logger)
	addMetricsGaugeUpdateJob(
		m,
		app.Config,
		app.DB,
		app.MetricsRecorder,
		app.MetricsCache,
		app.Clock,
		app.Logger,
	)

	// Shutdown jobs
	addServerShutdownJob(m, app.Server, app.Config.ShutdownTimeout, app.Logger)
	addCloserShutdownJob(m, "reference token cache", app.References.closer, app.Logger)
	addCloserShutdownJob(m, "client cache", app.ClientCache.Close, app.Logger)
	addCloserShutdownJob(m, "metrics cache", app.MetricsCache.Close, app.Logger)
	addRedisClientShutdownJob(m, app.RedisClient, app.Logger)
	addCloserShutdownJob(m, "database", app.DB.Close, app.Logger)

	// Wait for graceful shutdown
	<-m.Done()
}

// closeInfrastructure releases whatever was opened before a start-up failure
func (app *Application) closeInfrastructure() {
	if app.References.closer != nil {
		_ = app.References.closer()
	}
	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
	if app.DB != nil {
		_ = app.DB.Close()
	}
}

// healthChecks lists the dependencies reported by /health
func (app *Application) healthChecks() map[string]handlers.HealthChecker {
	checks := map[string]handlers.HealthChecker{
		"database": app.DB,
	}
	if app.References.health != nil {
		checks["reference_tokens"] = app.References.health
	}
	if app.RedisClient != nil {
		checks["redis"] = healthFunc(func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		})
	}
	return checks
}
