package reference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-authgate/tokenguard/internal/cache"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/mocks"
	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T, d time.Duration) (*CacheStore, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	c, err := cache.NewExpiring[models.Token](
		cache.NewMemoryCache[cache.Entry[models.Token]](clock), d, clock)
	require.NoError(t, err)
	return NewCacheStore(c), clock
}

func TestCacheStore_StoreAndGet(t *testing.T) {
	s, clock := newStore(t, 600*time.Second)
	ctx := context.Background()

	tok := &models.Token{
		Type:         models.TokenTypeAccess,
		ClientID:     "roclient",
		CreationTime: clock.Now(),
		Lifetime:     600,
		Scopes:       []string{"read", "write"},
	}
	require.NoError(t, s.StoreToken(ctx, "123", tok))

	got, err := s.GetToken(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "roclient", got.ClientID)
	assert.Equal(t, []string{"read", "write"}, got.Scopes)
}

func TestCacheStore_UnknownHandle(t *testing.T) {
	s, _ := newStore(t, time.Minute)

	_, err := s.GetToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}

func TestCacheStore_ExpiredLooksUnknown(t *testing.T) {
	s, clock := newStore(t, 2*time.Second)
	ctx := context.Background()

	require.NoError(t, s.StoreToken(ctx, "h", &models.Token{ClientID: "c"}))
	clock.Advance(2 * time.Second)

	_, err := s.GetToken(ctx, "h")
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}

func TestCacheStore_Revoke(t *testing.T) {
	s, _ := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.StoreToken(ctx, "h", &models.Token{ClientID: "c"}))
	require.NoError(t, s.RevokeToken(ctx, "h"))
	require.NoError(t, s.RevokeToken(ctx, "h"))

	_, err := s.GetToken(ctx, "h")
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}

func TestCacheStore_RefusesLifetimeBeyondCacheDuration(t *testing.T) {
	s, clock := newStore(t, 5*time.Minute)
	ctx := context.Background()

	err := s.StoreToken(ctx, "h", &models.Token{
		ClientID:     "c",
		CreationTime: clock.Now(),
		Lifetime:     3600,
	})
	require.ErrorIs(t, err, ErrLifetimeExceedsCache)

	_, err = s.GetToken(ctx, "h")
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}

func TestCacheStore_LifetimeEqualToCacheDuration(t *testing.T) {
	s, clock := newStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, s.StoreToken(ctx, "h", &models.Token{
		ClientID:     "c",
		CreationTime: clock.Now(),
		Lifetime:     300,
	}))

	clock.Advance(5*time.Minute - time.Second)
	got, err := s.GetToken(ctx, "h")
	require.NoError(t, err)
	assert.False(t, got.IsExpired(clock.Now()))
}

func TestCacheStore_NilToken(t *testing.T) {
	s, _ := newStore(t, time.Minute)
	assert.Error(t, s.StoreToken(context.Background(), "h", nil))
}

func TestCacheStore_BackendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCache[cache.Entry[models.Token]](ctrl)
	backend.EXPECT().
		Get(gomock.Any(), "h").
		Return(cache.Entry[models.Token]{}, cache.ErrCacheUnavailable)

	c, err := cache.NewExpiring[models.Token](backend, time.Minute, clockwork.NewFakeClock())
	require.NoError(t, err)

	_, err = NewCacheStore(c).GetToken(context.Background(), "h")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cache.ErrCacheUnavailable))
	assert.False(t, errors.Is(err, core.ErrTokenNotFound))
}

func TestNewHandle(t *testing.T) {
	a, b := NewHandle(), NewHandle()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
	assert.NotContains(t, a, ".")
}
