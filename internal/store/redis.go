package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores collection blobs as plain string values in Redis,
// optionally namespaced by a key prefix.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an existing Redis client.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

// Get returns the blob for key or ErrKeyNotFound.
func (r *RedisKV) Get(ctx context.Context, key Key) (string, error) {
	raw, err := r.client.Get(ctx, r.name(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Set stores the blob for key without expiry.
func (r *RedisKV) Set(ctx context.Context, key Key, value string) error {
	if err := r.client.Set(ctx, r.name(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob for key.
func (r *RedisKV) Delete(ctx context.Context, key Key) error {
	deleted, err := r.client.Del(ctx, r.name(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	if deleted == 0 {
		return ErrKeyNotFound
	}
	return nil
}

func (r *RedisKV) name(key Key) string {
	if r.prefix == "" {
		return string(key)
	}
	return r.prefix + ":" + string(key)
}
