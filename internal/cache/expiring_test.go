package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-authgate/tokenguard/internal/mocks"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestExpiring(t *testing.T, d time.Duration) (*Expiring[string], *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	e, err := NewExpiring[string](NewMemoryCache[Entry[string]](clock), d, clock)
	require.NoError(t, err)
	return e, clock
}

func TestNewExpiring_RejectsNonPositiveDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		_, err := NewExpiring[string](NewMemoryCache[Entry[string]](nil), d, nil)
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %s", d)
	}
}

func TestNewExpiring_RequiresBackend(t *testing.T) {
	_, err := NewExpiring[string](nil, time.Minute, nil)
	assert.Error(t, err)
}

func TestExpiring_GetWithinDuration(t *testing.T) {
	e, clock := newTestExpiring(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "handle", "record"))
	clock.Advance(4 * time.Minute)

	v, err := e.Get(ctx, "handle")
	require.NoError(t, err)
	assert.Equal(t, "record", v)
	assert.Equal(t, 5*time.Minute, e.Duration())
}

func TestExpiring_AbsentAtExpirationInstant(t *testing.T) {
	e, clock := newTestExpiring(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "handle", "record"))
	clock.Advance(time.Minute)

	_, err := e.Get(ctx, "handle")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestExpiring_UnknownKey(t *testing.T) {
	e, _ := newTestExpiring(t, time.Minute)

	_, err := e.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestExpiring_SetReplacesValueAndExpiration(t *testing.T) {
	e, clock := newTestExpiring(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "k", "old"))
	clock.Advance(45 * time.Second)
	require.NoError(t, e.Set(ctx, "k", "new"))
	clock.Advance(45 * time.Second)

	v, err := e.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestExpiring_Delete(t *testing.T) {
	e, _ := newTestExpiring(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, e.Set(ctx, "k", "v"))
	require.NoError(t, e.Delete(ctx, "k"))

	_, err := e.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

// A backend that still holds an entry past its recorded deadline must not
// resurrect it.
func TestExpiring_IgnoresBackendRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCache[Entry[string]](ctrl)
	clock := clockwork.NewFakeClock()

	backend.EXPECT().
		Get(gomock.Any(), "k").
		Return(Entry[string]{Value: "stale", ExpiresAt: clock.Now()}, nil)

	e, err := NewExpiring[string](backend, time.Minute, clock)
	require.NoError(t, err)

	_, err = e.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestExpiring_SetPassesDurationAsBackendTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCache[Entry[string]](ctrl)
	clock := clockwork.NewFakeClock()

	backend.EXPECT().
		Set(gomock.Any(), "k", Entry[string]{Value: "v", ExpiresAt: clock.Now().Add(time.Minute)}, time.Minute).
		Return(nil)

	e, err := NewExpiring[string](backend, time.Minute, clock)
	require.NoError(t, err)
	require.NoError(t, e.Set(context.Background(), "k", "v"))
}

func TestExpiring_BackendFailureIsNotAMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCache[Entry[string]](ctrl)
	boom := errors.New("connection refused")

	backend.EXPECT().
		Get(gomock.Any(), "k").
		Return(Entry[string]{}, boom)

	e, err := NewExpiring[string](backend, time.Minute, clockwork.NewFakeClock())
	require.NoError(t, err)

	_, err = e.Get(context.Background(), "k")
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestExpiring_UnavailableIsNotWrappedTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCache[Entry[string]](ctrl)
	backend.EXPECT().
		Get(gomock.Any(), "k").
		Return(Entry[string]{}, ErrCacheUnavailable)

	e, err := NewExpiring[string](backend, time.Minute, clockwork.NewFakeClock())
	require.NoError(t, err)

	_, err = e.Get(context.Background(), "k")
	assert.Equal(t, ErrCacheUnavailable, err)
}

func TestExpiring_Deadline(t *testing.T) {
	e, clock := newTestExpiring(t, 5*time.Minute)
	assert.True(t, e.Deadline().Equal(clock.Now().Add(5*time.Minute)))

	clock.Advance(time.Minute)
	assert.True(t, e.Deadline().Equal(clock.Now().Add(5*time.Minute)))
}
