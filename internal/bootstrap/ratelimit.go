package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// setupRateLimiting builds the limiter in front of the validation endpoint.
// A pass-through middleware is returned when rate limiting is disabled.
func setupRateLimiting(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *slog.Logger,
) (gin.HandlerFunc, error) {
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }, nil
	}

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	rlConfig := middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		StoreType:         storeType,
		KeyPrefix:         cfg.RedisKeyPrefix + "ratelimit",
	}
	// A typed nil client would defeat the limiter's nil check
	if redisClient != nil {
		rlConfig.RedisClient = redisClient
	}

	limiter, err := middleware.NewRateLimiter(rlConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	if storeType == middleware.RateLimitStoreRedis {
		logger.Info("Rate limiting enabled (redis, shared by all instances)",
			"requests_per_minute", cfg.RateLimitPerMinute)
	} else {
		logger.Info("Rate limiting enabled (memory, single instance only)",
			"requests_per_minute", cfg.RateLimitPerMinute)
	}
	return limiter, nil
}
