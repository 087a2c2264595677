package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/providers"
	apperrors "github.com/Bukassi600104/ultraclean/backend/pkg/errors"
)

// RedisAdapter implements the CacheProvider interface using Redis
type RedisAdapter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisAdapter creates a new Redis cache adapter. Every key is
// namespaced with prefix so several environments can share one instance.
func NewRedisAdapter(client redis.UniversalClient, prefix string) providers.CacheProvider {
	return &RedisAdapter{
		client: client,
		prefix: prefix,
	}
}

func (a *RedisAdapter) key(k string) string {
	return a.prefix + k
}

// Get retrieves a value from cache
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Get(ctx, a.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("key not found: %s", key))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}
	return result, nil
}

// Set stores a value in cache with expiration
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.client.Set(ctx, a.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

// SetIfAbsent stores a value only if the key is new
func (a *RedisAdapter) SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	stored, err := a.client.SetNX(ctx, a.key(key), value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx in cache: %w", err)
	}
	return stored, nil
}

// Increment bumps a windowed counter
func (a *RedisAdapter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := a.key(key)

	pipe := a.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}

// Delete removes a value from cache
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, a.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}
