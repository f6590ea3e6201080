package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes"`
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisCache_GetSet(t *testing.T) {
	_, client := setupMiniRedis(t)
	c := NewRedisCache[testRecord](client, "test:")
	defer c.Close()
	ctx := context.Background()

	want := testRecord{ClientID: "roclient", Scopes: []string{"read", "write"}}
	require.NoError(t, c.Set(ctx, "h1", want, time.Minute))

	got, err := c.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	mr, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "refs:")
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "abc", "v", time.Minute))
	assert.True(t, mr.Exists("refs:abc"))
}

func TestRedisCache_Miss(t *testing.T) {
	_, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "test:")
	defer c.Close()

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	mr, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "test:")
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Second))
	mr.FastForward(11 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_InvalidValue(t *testing.T) {
	mr, client := setupMiniRedis(t)
	c := NewRedisCache[testRecord](client, "test:")
	defer c.Close()

	require.NoError(t, mr.Set("test:bad", "{not json"))

	_, err := c.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRedisCache_Delete(t *testing.T) {
	_, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "test:")
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "test:")
	defer c.Close()
	ctx := context.Background()

	mr.Close()

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheUnavailable)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.ErrorIs(t, c.Health(ctx), ErrCacheUnavailable)
}

func TestRedisCache_GetWithFetch(t *testing.T) {
	_, client := setupMiniRedis(t)
	c := NewRedisCache[string](client, "test:")
	defer c.Close()
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context, key string) (string, error) {
		calls++
		return "fetched-" + key, nil
	}

	v, err := c.GetWithFetch(ctx, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fetched-k", v)

	v, err = c.GetWithFetch(ctx, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fetched-k", v)
	assert.Equal(t, 1, calls)
}

// The envelope's own deadline wins even while Redis still holds the key.
func TestExpiring_OverRedis(t *testing.T) {
	_, client := setupMiniRedis(t)
	clock := clockwork.NewFakeClock()
	e, err := NewExpiring[string](NewRedisCache[Entry[string]](client, "exp:"), time.Minute, clock)
	require.NoError(t, err)
	defer e.Close()
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "k", "v"))

	v, err := e.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	clock.Advance(time.Minute)
	_, err = e.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
