package repositories

import (
	"context"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const kvKeyPrefix = "ers:kv:"

// RedisKVStore keeps each document under one Redis string key with no expiry.
type RedisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "kv.redis.Get")(&err)

	b, err := s.client.Get(ctx, kvKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return b, true, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.redis.Set")(&err)

	if strings.TrimSpace(key) == "" {
		return errors.New("set kv: empty key")
	}
	if err := s.client.Set(ctx, kvKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}
	return nil
}
