package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/store"

	"github.com/appleboy/graceful"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server, logger *slog.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			logger.Info("Server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Failed to start server", "error", err)
				os.Exit(1)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(
	m *graceful.Manager,
	srv *http.Server,
	timeout time.Duration,
	logger *slog.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
			return err
		}

		logger.Info("Server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.Info("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis client", "error", err)
			return err
		}
		logger.Info("Redis connection closed")
		return nil
	})
}

// addCloserShutdownJob closes a named resource on shutdown
func addCloserShutdownJob(
	m *graceful.Manager,
	name string,
	closer func() error,
	logger *slog.Logger,
) {
	if closer == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closer(); err != nil {
			logger.Error("Error closing resource", "resource", name, "error", err)
			return err
		}
		logger.Info("Resource closed", "resource", name)
		return nil
	})
}

// addCacheJanitorJob sweeps expired entries out of an in-process cache
func addCacheJanitorJob(m *graceful.Manager, cfg *config.Config, j janitor, logger *slog.Logger) {
	if j == nil || cfg.CacheCleanupInterval <= 0 {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		j.StartJanitor(ctx, cfg.CacheCleanupInterval)
		logger.Debug("Cache janitor started", "interval", cfg.CacheCleanupInterval)
		<-ctx.Done()
		return nil
	})
}

// tokenPurger deletes reference tokens past their expiration instant.
type tokenPurger interface {
	DeleteExpiredReferenceTokens(ctx context.Context) (int64, error)
}

// addExpiredTokenCleanupJob periodically purges expired reference tokens from
// the database. Expired rows are already invisible to lookups.
func addExpiredTokenCleanupJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	clock clockwork.Clock,
	logger *slog.Logger,
) {
	if cfg.ReferenceTokenStore != config.ReferenceStoreDatabase || cfg.TokenCleanupInterval <= 0 {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		runTokenCleanup(ctx, db, clock, cfg.TokenCleanupInterval, logger)
		return nil
	})
}

// runTokenCleanup purges immediately and then on every tick until ctx is done
func runTokenCleanup(
	ctx context.Context,
	p tokenPurger,
	clock clockwork.Clock,
	interval time.Duration,
	logger *slog.Logger,
) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	purge := func() {
		deleted, err := p.DeleteExpiredReferenceTokens(ctx)
		switch {
		case err != nil:
			logger.Error("Failed to purge expired reference tokens", "error", err)
		case deleted > 0:
			logger.Info("Purged expired reference tokens", "count", deleted)
		}
	}

	// Run cleanup immediately on startup
	purge()

	for {
		select {
		case <-ticker.Chan():
			purge()
		case <-ctx.Done():
			return
		}
	}
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	prometheusMetrics metrics.Recorder,
	metricsCache core.Cache[int64],
	clock clockwork.Clock,
	logger *slog.Logger,
) {
	if !cfg.MetricsEnabled || cfg.MetricsGaugeUpdateInterval <= 0 {
		return
	}

	countTokens := cfg.ReferenceTokenStore == config.ReferenceStoreDatabase

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := clock.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		cacheWrapper := metrics.NewCacheWrapper(db, metricsCache)
		errLogger := newErrorLogger(clock, logger)

		update := func() {
			updateGaugeMetricsWithCache(
				ctx,
				cacheWrapper,
				prometheusMetrics,
				cfg.MetricsGaugeUpdateInterval,
				countTokens,
				errLogger,
			)
		}

		// Update immediately on startup
		update()

		for {
			select {
			case <-ticker.Chan():
				update()
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
	clock           clockwork.Clock
	logger          *slog.Logger
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger(clock clockwork.Clock, logger *slog.Logger) *errorLogger {
	return &errorLogger{
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: 5 * time.Minute, // Log at most once per 5 minutes per operation
		clock:           clock,
		logger:          logger,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether
// the error was logged.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	now := e.clock.Now()
	lastTime, exists := e.lastErrorTimes[operation]

	if exists && now.Sub(lastTime) < e.rateLimitWindow {
		return false
	}
	e.logger.Warn("Database query failed (further errors will be suppressed)",
		"operation", operation,
		"error", err,
		"suppress_for", e.rateLimitWindow)
	e.lastErrorTimes[operation] = now
	return true
}

// updateGaugeMetricsWithCache updates gauge metrics using a cache-backed store.
// The cache TTL should match the update interval to ensure consistent behavior.
func updateGaugeMetricsWithCache(
	ctx context.Context,
	cacheWrapper *metrics.CacheWrapper,
	m metrics.Recorder,
	cacheTTL time.Duration,
	countTokens bool,
	errLogger *errorLogger,
) {
	if countTokens {
		activeTokens, err := cacheWrapper.GetActiveReferenceTokensCount(ctx, cacheTTL)
		if err != nil {
			m.RecordDatabaseQueryError("count_reference_tokens")
			errLogger.logIfNeeded("count_reference_tokens", err)
		} else {
			m.SetActiveReferenceTokensCount(int(activeTokens))
		}
	}

	activeClients, err := cacheWrapper.GetActiveClientsCount(ctx, cacheTTL)
	if err != nil {
		m.RecordDatabaseQueryError("count_clients")
		errLogger.logIfNeeded("count_clients", err)
		return
	}
	m.SetActiveClientsCount(int(activeClients))
}
