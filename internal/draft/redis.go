package draft

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores drafts as plain string values, optionally namespaced by a
// key prefix. SET replaces the value atomically.
type RedisBackend struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(rdb redis.UniversalClient, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("draft: redis get: %w", err)
	}
	return data, nil
}

func (b *RedisBackend) Put(ctx context.Context, key string, payload []byte) error {
	if err := b.rdb.Set(ctx, b.prefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("draft: redis set: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.rdb.Del(ctx, b.prefix+key).Err(); err != nil {
		return fmt.Errorf("draft: redis del: %w", err)
	}
	return nil
}

func (b *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := b.rdb.Scan(ctx, 0, b.prefix+KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), b.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("draft: redis scan: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
