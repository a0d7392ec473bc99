package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

// TTLs for cached entities.
const (
	PostTTL = 5 * time.Minute
	UserTTL = 10 * time.Minute
	ListTTL = 30 * time.Second
)

// UserKey returns the cache key for a single user.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// PostsListKey returns the cache key for the anonymous front-page post list.
func PostsListKey() string {
	return "posts:list"
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate
// dest), then stores the result in Redis with ttl. fetch must write into dest.
// A failed or corrupt cache read counts as a miss so reads keep working
// while Redis is down.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		observability.CacheRequests.WithLabelValues("error").Inc()
	case found:
		observability.CacheRequests.WithLabelValues("hit").Inc()
		return nil
	default:
		observability.CacheRequests.WithLabelValues("miss").Inc()
	}

	// Fetch from source (DB)
	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes the given keys from the cache (best-effort).
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_ = client.Del(ctx, keys...).Err()
}

// InvalidatePostsList drops the cached front-page list after any post mutation.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey())
}

// InvalidateUser drops the cached user entry.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}
