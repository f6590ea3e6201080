package metrics

import (
	"context"
	"time"

	"github.com/go-authgate/tokenguard/internal/core"
)

const (
	cacheKeyReferenceTokens = "reference_tokens:active"
	cacheKeyClients         = "clients:active"
)

// metricsStore defines the interface for database operations needed by CacheWrapper.
// This interface allows for easier testing without requiring a full store.Store.
type metricsStore interface {
	CountActiveReferenceTokens(ctx context.Context) (int64, error)
	CountActiveClients(ctx context.Context) (int64, error)
}

// CacheWrapper provides a read-through cache for gauge data.
// In multi-instance deployments sharing a Redis cache only one replica per
// TTL window hits the database.
type CacheWrapper struct {
	store metricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store metricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetActiveReferenceTokensCount returns the number of unexpired reference
// tokens in the durable store.
func (m *CacheWrapper) GetActiveReferenceTokensCount(
	ctx context.Context,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		cacheKeyReferenceTokens,
		ttl,
		func(ctx context.Context, _ string) (int64, error) {
			return m.store.CountActiveReferenceTokens(ctx)
		},
	)
}

// GetActiveClientsCount returns the number of enabled clients.
func (m *CacheWrapper) GetActiveClientsCount(
	ctx context.Context,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		cacheKeyClients,
		ttl,
		func(ctx context.Context, _ string) (int64, error) {
			return m.store.CountActiveClients(ctx)
		},
	)
}
