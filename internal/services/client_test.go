package services

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

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real store fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}

func TestClientService_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockCache := mocks.NewMockCache[models.Client](ctrl)
	mockMetrics := mocks.NewMockRecorder(ctrl)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "client:roclient", time.Minute, gomock.Any()).
		DoAndReturn(callFetchFn[models.Client])
	mockStore.EXPECT().
		FindClient(gomock.Any(), "roclient").
		Return(&models.Client{ClientID: "roclient", IsActive: true}, nil)
	mockMetrics.EXPECT().RecordCacheLookup("clients", false)

	svc := NewClientService(mockStore, mockCache, time.Minute, mockMetrics)
	client, err := svc.FindClient(context.Background(), "roclient")
	require.NoError(t, err)
	assert.Equal(t, "roclient", client.ClientID)
	assert.True(t, client.IsActive)
}

func TestClientService_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockCache := mocks.NewMockCache[models.Client](ctrl)
	mockMetrics := mocks.NewMockRecorder(ctrl)

	// No FindClient expectation: a store call fails the test
	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "client:roclient", time.Minute, gomock.Any()).
		Return(models.Client{ClientID: "roclient", IsActive: true}, nil)
	mockMetrics.EXPECT().RecordCacheLookup("clients", true)

	svc := NewClientService(mockStore, mockCache, time.Minute, mockMetrics)
	client, err := svc.FindClient(context.Background(), "roclient")
	require.NoError(t, err)
	assert.Equal(t, "roclient", client.ClientID)
}

func TestClientService_NotFoundIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockStore.EXPECT().
		FindClient(gomock.Any(), "ghost").
		Return(nil, core.ErrClientNotFound).
		Times(2)

	svc := NewClientService(mockStore, cache.NewMemoryCache[models.Client](nil), time.Minute, nil)

	for range 2 {
		_, err := svc.FindClient(context.Background(), "ghost")
		assert.ErrorIs(t, err, core.ErrClientNotFound)
	}
}

func TestClientService_MemoryCacheExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := clockwork.NewFakeClock()
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockStore.EXPECT().
		FindClient(gomock.Any(), "roclient").
		Return(&models.Client{ClientID: "roclient", IsActive: true}, nil).
		Times(2)

	svc := NewClientService(
		mockStore,
		cache.NewMemoryCache[models.Client](clock),
		30*time.Second,
		nil,
	)
	ctx := context.Background()

	_, err := svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
	_, err = svc.FindClient(ctx, "roclient")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	_, err = svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
}

func TestClientService_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().
			FindClient(gomock.Any(), "roclient").
			Return(&models.Client{ClientID: "roclient", IsActive: true}, nil),
		mockStore.EXPECT().
			FindClient(gomock.Any(), "roclient").
			Return(&models.Client{ClientID: "roclient", IsActive: false}, nil),
	)

	svc := NewClientService(mockStore, cache.NewMemoryCache[models.Client](nil), time.Hour, nil)
	ctx := context.Background()

	client, err := svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
	assert.True(t, client.IsActive)

	require.NoError(t, svc.Invalidate(ctx, "roclient"))

	client, err = svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
	assert.False(t, client.IsActive)
}

func TestClientService_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	storeErr := errors.New("connection reset")
	mockStore.EXPECT().FindClient(gomock.Any(), "roclient").Return(nil, storeErr)

	svc := NewClientService(mockStore, cache.NewMemoryCache[models.Client](nil), 0, nil)

	_, err := svc.FindClient(context.Background(), "roclient")
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, svc.Invalidate(context.Background(), "roclient"))
}

func TestClientService_SetActiveInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().
			FindClient(gomock.Any(), "roclient").
			Return(&models.Client{ClientID: "roclient", IsActive: true}, nil),
		mockStore.EXPECT().
			SetClientActive(gomock.Any(), "roclient", false).
			Return(nil),
		mockStore.EXPECT().
			FindClient(gomock.Any(), "roclient").
			Return(&models.Client{ClientID: "roclient", IsActive: false}, nil),
	)

	svc := NewClientService(mockStore, cache.NewMemoryCache[models.Client](nil), time.Hour, nil)
	ctx := context.Background()

	client, err := svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
	assert.True(t, client.IsActive)

	require.NoError(t, svc.SetActive(ctx, "roclient", false))

	client, err = svc.FindClient(ctx, "roclient")
	require.NoError(t, err)
	assert.False(t, client.IsActive)
}

func TestClientService_SetActiveUnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockStore.EXPECT().
		SetClientActive(gomock.Any(), "ghost", true).
		Return(core.ErrClientNotFound)

	svc := NewClientService(mockStore, cache.NewMemoryCache[models.Client](nil), time.Hour, nil)
	assert.ErrorIs(t, svc.SetActive(context.Background(), "ghost", true), core.ErrClientNotFound)
}

func TestClientService_ListClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockClientRegistry(ctrl)
	mockStore.EXPECT().
		ListClients(gomock.Any(), 2, 10).
		Return([]models.Client{{ClientID: "roclient"}}, int64(11), nil)

	svc := NewClientService(mockStore, nil, time.Minute, nil)
	clients, total, err := svc.ListClients(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, clients, 1)
	assert.Equal(t, "roclient", clients[0].ClientID)
}
