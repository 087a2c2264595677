package providers

import (
	"context"
	"time"
)

// CacheProvider defines the interface for shared short-lived state
// (submission counters, duplicate fingerprints)
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetIfAbsent stores a value only when the key does not exist yet.
	// It reports whether the value was stored.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Increment atomically bumps a counter, starting its expiry window on
	// first use, and returns the new count and the time left in the window.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
