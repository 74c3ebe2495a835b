// Package cache exposes the narrow slice of Redis this service uses: a
// get/set key-value store with TTLs and set-membership queries. The cache is
// shared and externally owned; last writer wins and nothing here locks.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the key/value + set-membership contract consumed by the checkers
// and data sources.
type Cache interface {
	// Get returns the raw value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key with the given TTL, overwriting any prior
	// value. A zero TTL stores without expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// IsMember reports whether member is in the named set.
	IsMember(ctx context.Context, set, member string) (bool, error)
}

// Redis implements Cache on a go-redis client.
type Redis struct {
	client redis.Cmdable
}

// NewRedis wraps an established Redis client.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) IsMember(ctx context.Context, set, member string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, set, member).Result()
	if err != nil {
		return false, fmt.Errorf("cache sismember %q: %w", set, err)
	}
	return ok, nil
}

// SeedSet adds members to a set. Used at startup to bootstrap the country
// whitelist in development environments.
func (r *Redis) SeedSet(ctx context.Context, set string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := r.client.SAdd(ctx, set, args...).Err(); err != nil {
		return fmt.Errorf("cache sadd %q: %w", set, err)
	}
	return nil
}
