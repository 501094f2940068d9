package cache

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultGuidanceTTL = 10 * time.Minute

// RedisGuidanceCache decorates a GuidanceProvider, caching answers by the
// normalized (trimmed, lower-cased) message.
type RedisGuidanceCache struct {
	next   ports.GuidanceProvider
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuidanceCache(next ports.GuidanceProvider, client *redis.Client, ttl time.Duration) *RedisGuidanceCache {
	if ttl <= 0 {
		ttl = DefaultGuidanceTTL
	}
	return &RedisGuidanceCache{next: next, client: client, ttl: ttl}
}

func guidanceKey(message string) string {
	return "classify:" + strings.ToLower(strings.TrimSpace(message))
}

func (c *RedisGuidanceCache) Guidance(ctx context.Context, message string) (domain.GuidanceResult, error) {
	key := guidanceKey(message)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached domain.GuidanceResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			log.Debug().Str("key", key).Msg("guidance cache hit")
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Str("key", key).Err(err).Msg("guidance cache read failed")
	}

	res, err := c.next.Guidance(ctx, message)
	if err != nil {
		return domain.GuidanceResult{}, err
	}

	b, err := json.Marshal(res)
	if err != nil {
		return res, nil
	}
	// Cache writes outlive caller cancellation.
	if err := c.client.Set(context.WithoutCancel(ctx), key, b, c.ttl).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("guidance cache write failed")
	}
	return res, nil
}
