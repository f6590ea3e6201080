package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-authgate/tokenguard/internal/core"

	"github.com/jonboulle/clockwork"
)

// Entry is the envelope Expiring stores in its backend. ExpiresAt is fixed
// at insertion time and travels with the value, so the expiry decision does
// not depend on when (or whether) the backend evicts the key.
type Entry[T any] struct {
	Value     T         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expiring is a string-keyed store whose entries all live for the same
// duration, fixed at construction. Lookups of an entry whose expiration
// instant is at or before the current instant report ErrCacheMiss.
type Expiring[T any] struct {
	backend  core.Cache[Entry[T]]
	duration time.Duration
	clock    clockwork.Clock
}

// NewExpiring creates an expiring cache over backend. duration must be > 0.
func NewExpiring[T any](
	backend core.Cache[Entry[T]],
	duration time.Duration,
	clock clockwork.Clock,
) (*Expiring[T], error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDuration, duration)
	}
	if backend == nil {
		return nil, errors.New("cache: backend is required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Expiring[T]{
		backend:  backend,
		duration: duration,
		clock:    clock,
	}, nil
}

// Duration returns the configured entry lifetime.
func (e *Expiring[T]) Duration() time.Duration {
	return e.duration
}

// Deadline returns the expiration instant of an entry stored now.
func (e *Expiring[T]) Deadline() time.Time {
	return e.clock.Now().Add(e.duration)
}

// Set stores value under key, replacing any previous value and expiration.
func (e *Expiring[T]) Set(ctx context.Context, key string, value T) error {
	entry := Entry[T]{
		Value:     value,
		ExpiresAt: e.clock.Now().Add(e.duration),
	}
	return e.backend.Set(ctx, key, entry, e.duration)
}

// Get returns the value stored under key. A missing or expired entry yields
// ErrCacheMiss. Backend failures wrap ErrCacheUnavailable and are never
// reported as a miss.
func (e *Expiring[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	entry, err := e.backend.Get(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, ErrCacheMiss), errors.Is(err, ErrCacheUnavailable):
		return zero, err
	default:
		return zero, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	if !e.clock.Now().Before(entry.ExpiresAt) {
		return zero, ErrCacheMiss
	}

	return entry.Value, nil
}

// Delete removes key.
func (e *Expiring[T]) Delete(ctx context.Context, key string) error {
	return e.backend.Delete(ctx, key)
}

// Health reports the backend's health.
func (e *Expiring[T]) Health(ctx context.Context) error {
	return e.backend.Health(ctx)
}

// Close closes the backend.
func (e *Expiring[T]) Close() error {
	return e.backend.Close()
}
