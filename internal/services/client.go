// Package services implements the liveness collaborators consulted by the
// validator: client lookup and user activity checks.
package services

import (
	"context"
	"time"

	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/models"
)

const clientCacheName = "clients"

var _ core.ClientStore = (*ClientService)(nil)

// ClientService resolves clients through a read-through cache in front of
// the durable store. Unknown clients are not cached. The cache is local to
// the process: a client disabled elsewhere stays cached here for up to the
// cache TTL.
type ClientService struct {
	store    core.ClientRegistry
	cache    core.Cache[models.Client]
	cacheTTL time.Duration
	metrics  core.Recorder
}

// NewClientService creates a client lookup. A nil cache or a non-positive
// TTL disables caching.
func NewClientService(
	s core.ClientRegistry,
	c core.Cache[models.Client],
	cacheTTL time.Duration,
	m core.Recorder,
) *ClientService {
	if m == nil {
		m = metrics.NewNoopMetrics()
	}
	if cacheTTL <= 0 {
		c = nil
	}
	return &ClientService{
		store:    s,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// FindClient returns the client or core.ErrClientNotFound.
func (s *ClientService) FindClient(ctx context.Context, clientID string) (*models.Client, error) {
	if s.cache == nil {
		return s.store.FindClient(ctx, clientID)
	}

	fetched := false
	client, err := s.cache.GetWithFetch(
		ctx,
		clientCacheKey(clientID),
		s.cacheTTL,
		func(ctx context.Context, _ string) (models.Client, error) {
			fetched = true
			c, err := s.store.FindClient(ctx, clientID)
			if err != nil {
				return models.Client{}, err
			}
			return *c, nil
		},
	)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCacheLookup(clientCacheName, !fetched)
	return &client, nil
}

// Invalidate drops a cached client so the next lookup reads the store.
func (s *ClientService) Invalidate(ctx context.Context, clientID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, clientCacheKey(clientID))
}

// SetActive enables or disables a client and drops its cached copy.
func (s *ClientService) SetActive(ctx context.Context, clientID string, active bool) error {
	if err := s.store.SetClientActive(ctx, clientID, active); err != nil {
		return err
	}
	return s.Invalidate(ctx, clientID)
}

// ListClients returns one page of clients straight from the store.
func (s *ClientService) ListClients(ctx context.Context, page, pageSize int) ([]models.Client, int64, error) {
	return s.store.ListClients(ctx, page, pageSize)
}

func clientCacheKey(clientID string) string {
	return "client:" + clientID
}
