package cache

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultHospitalTTL = 5 * time.Minute

// RedisHospitalCache decorates a HospitalSearch with a Redis read-through
// cache keyed by the exact query coordinate. Cache failures are logged and
// never fail the search.
type RedisHospitalCache struct {
	next   ports.HospitalSearch
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHospitalCache(next ports.HospitalSearch, client *redis.Client, ttl time.Duration) *RedisHospitalCache {
	if ttl <= 0 {
		ttl = DefaultHospitalTTL
	}
	return &RedisHospitalCache{next: next, client: client, ttl: ttl}
}

func hospitalKey(at domain.Coordinate) string {
	return fmt.Sprintf("hospitals:%v:%v", at.Latitude, at.Longitude)
}

func (c *RedisHospitalCache) NearbyHospitals(ctx context.Context, at domain.Coordinate) (_ []domain.Hospital, err error) {
	defer obs.Time(ctx, "hospital.cache.NearbyHospitals")(&err)

	key := hospitalKey(at)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var hospitals []domain.Hospital
		if err := json.Unmarshal(raw, &hospitals); err == nil {
			log.Debug().Str("key", key).Msg("hospital cache hit")
			return hospitals, nil
		}
		log.Warn().Str("key", key).Msg("hospital cache entry unreadable; refetching")
	case errors.Is(err, redis.Nil):
		log.Debug().Str("key", key).Msg("hospital cache miss")
	default:
		log.Warn().Str("key", key).Err(err).Msg("hospital cache read failed")
	}

	hospitals, err := c.next.NearbyHospitals(ctx, at)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(hospitals)
	if err != nil {
		log.Warn().Err(err).Msg("hospital cache encode failed")
		return hospitals, nil
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("hospital cache write failed")
	}

	return hospitals, nil
}
