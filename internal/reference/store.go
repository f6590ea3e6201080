// Package reference implements the reference token store on top of an
// expiring cache.
package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-authgate/tokenguard/internal/cache"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/google/uuid"
)

var _ core.ReferenceTokenStore = (*CacheStore)(nil)

// ErrLifetimeExceedsCache is returned by StoreToken for a record that would
// still be valid when its cache entry expires.
var ErrLifetimeExceedsCache = errors.New("reference: token lifetime exceeds the cache duration")

// CacheStore keeps token records in an Expiring cache keyed by handle.
// Every stored record expires no later than its cache entry, so a live
// token never reads as unknown.
type CacheStore struct {
	cache *cache.Expiring[models.Token]
}

// NewCacheStore creates a store over c.
func NewCacheStore(c *cache.Expiring[models.Token]) *CacheStore {
	return &CacheStore{cache: c}
}

// StoreToken saves token under handle. Handles must be unique; use NewHandle.
func (s *CacheStore) StoreToken(ctx context.Context, handle string, token *models.Token) error {
	if token == nil {
		return errors.New("reference: nil token")
	}
	if deadline := s.cache.Deadline(); token.ExpiresAt().After(deadline) {
		return fmt.Errorf("%w: token expires at %s, cache entry at %s (duration %s)",
			ErrLifetimeExceedsCache,
			token.ExpiresAt().UTC().Format(time.RFC3339),
			deadline.UTC().Format(time.RFC3339),
			s.cache.Duration())
	}
	return s.cache.Set(ctx, handle, *token)
}

// GetToken returns the record stored under handle, or core.ErrTokenNotFound
// when it is unknown or expired.
func (s *CacheStore) GetToken(ctx context.Context, handle string) (*models.Token, error) {
	token, err := s.cache.Get(ctx, handle)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, core.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reference token lookup: %w", err)
	}
	return &token, nil
}

// RevokeToken removes handle. Unknown handles are not an error.
func (s *CacheStore) RevokeToken(ctx context.Context, handle string) error {
	return s.cache.Delete(ctx, handle)
}

// NewHandle returns a random 128-bit handle as 32 hex characters.
func NewHandle() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
