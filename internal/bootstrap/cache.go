package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-authgate/tokenguard/internal/cache"
	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/handlers"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/reference"
	"github.com/go-authgate/tokenguard/internal/store"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// janitor is implemented by in-process caches that need periodic sweeping.
type janitor interface {
	StartJanitor(ctx context.Context, interval time.Duration)
}

// referenceStore is the selected reference token backend plus its lifecycle hooks.
type referenceStore struct {
	store   core.ReferenceTokenStore
	health  handlers.HealthChecker // nil when covered by the database check
	closer  func() error           // nil when the backend owns nothing
	janitor janitor                // nil unless entries live in process memory
}

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config, logger *slog.Logger) metrics.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.Info("Prometheus metrics initialized")
	} else {
		logger.Info("Metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// initializeMetricsCache creates the cache in front of the gauge count queries
func initializeMetricsCache(_ *config.Config, clock clockwork.Clock) core.Cache[int64] {
	return cache.NewMemoryCache[int64](clock)
}

// initializeReferenceTokenStore selects where reference token handles resolve
func initializeReferenceTokenStore(
	ctx context.Context,
	cfg *config.Config,
	db *store.Store,
	redisClient *redis.Client,
	clock clockwork.Clock,
	logger *slog.Logger,
) (referenceStore, error) {
	prefix := cfg.RedisKeyPrefix + "reftoken:"

	switch cfg.ReferenceTokenStore {
	case config.ReferenceStoreDatabase:
		logger.Info("Reference tokens: database", "driver", cfg.DatabaseDriver)
		return referenceStore{store: db}, nil

	case config.ReferenceStoreRedis:
		if redisClient == nil {
			return referenceStore{}, fmt.Errorf(
				"%w: redis reference store without a redis client",
				config.ErrInvalidConfig,
			)
		}
		backend := cache.NewRedisCache[cache.Entry[models.Token]](redisClient, prefix)
		exp, err := cache.NewExpiring[models.Token](backend, cfg.ReferenceTokenCacheDuration, clock)
		if err != nil {
			return referenceStore{}, err
		}
		logger.Info("Reference tokens: redis",
			"addr", cfg.RedisAddr,
			"db", cfg.RedisDB,
			"duration", cfg.ReferenceTokenCacheDuration)
		// The shared client is closed by its own shutdown job.
		return referenceStore{store: reference.NewCacheStore(exp), health: exp}, nil

	case config.ReferenceStoreRueidis:
		backend, err := cache.NewRueidisCache[cache.Entry[models.Token]](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			prefix,
		)
		if err != nil {
			return referenceStore{}, fmt.Errorf("failed to initialize rueidis reference store: %w", err)
		}
		exp, err := cache.NewExpiring[models.Token](backend, cfg.ReferenceTokenCacheDuration, clock)
		if err != nil {
			backend.Close()
			return referenceStore{}, err
		}
		logger.Info("Reference tokens: rueidis",
			"addr", cfg.RedisAddr,
			"db", cfg.RedisDB,
			"duration", cfg.ReferenceTokenCacheDuration)
		return referenceStore{
			store:  reference.NewCacheStore(exp),
			health: exp,
			closer: exp.Close,
		}, nil

	default: // memory
		backend := cache.NewMemoryCache[cache.Entry[models.Token]](clock)
		exp, err := cache.NewExpiring[models.Token](backend, cfg.ReferenceTokenCacheDuration, clock)
		if err != nil {
			return referenceStore{}, err
		}
		logger.Info("Reference tokens: memory (single instance only)",
			"duration", cfg.ReferenceTokenCacheDuration)
		return referenceStore{
			store:   reference.NewCacheStore(exp),
			closer:  exp.Close,
			janitor: backend,
		}, nil
	}
}
