package app

import (
	"database/sql"
	"emergency-response-service/internal/adapters/cache"
	"emergency-response-service/internal/adapters/remote"
	"emergency-response-service/internal/adapters/repositories"
	"emergency-response-service/internal/config"
	"emergency-response-service/internal/platform/db"
	"emergency-response-service/internal/ports"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Store bundles the persistence handles selected by STORE_DRIVER.
// Redis is set whenever REDIS_URL is configured, independent of the driver.
type Store struct {
	KV        ports.KVStore
	Countries remote.CountryCache
	Redis     *redis.Client

	sqlDB *sql.DB
}

// OpenStore connects the configured backend. Schema creation is left to Migrate.
func OpenStore(cfg *config.Config) (*Store, error) {
	s := &Store{}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open store: parse REDIS_URL: %w", err)
		}
		s.Redis = redis.NewClient(opts)
	}

	switch cfg.StoreDriver {
	case config.StoreSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.sqlDB = conn
		s.KV = repositories.NewSqliteKVStore(conn)
		s.Countries = cache.NewSqliteCountryCache(conn)
	case config.StorePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.sqlDB = conn
		s.KV = repositories.NewSQLKVStore(conn)
		s.Countries = cache.NewSQLCountryCache(conn)
	case config.StoreRedis:
		if s.Redis == nil {
			return nil, errors.New("open store: redis driver needs REDIS_URL")
		}
		s.KV = repositories.NewRedisKVStore(s.Redis)
	default:
		return nil, fmt.Errorf("open store: unknown driver %q", cfg.StoreDriver)
	}

	log.Info().Str("driver", cfg.StoreDriver).Bool("redis", s.Redis != nil).Msg("store opened")
	return s, nil
}

// Migrate creates the SQL schema for the selected driver. Redis needs none.
func (s *Store) Migrate(cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return repositories.InitSchema(s.sqlDB)
	case config.StorePostgres:
		return repositories.InitPostgresSchema(s.sqlDB)
	default:
		return nil
	}
}

func (s *Store) Close() {
	if s.sqlDB != nil {
		if err := s.sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
}
