package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is a Redis-backed implementation of store.KV. Keys live under a common
// prefix so several tools can share one instance. A zero TTL keeps entries
// until they are deleted.
type KV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewKV(client *redis.Client, prefix string, ttl time.Duration) *KV {
	if prefix == "" {
		prefix = "quizclient"
	}
	return &KV{client: client, prefix: prefix, ttl: ttl}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := k.client.Get(ctx, k.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, k.key(key), value, k.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, k.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (k *KV) key(key string) string {
	return k.prefix + ":" + key
}
