package repositories

import (
	"context"
	"database/sql"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLKVStore is a Postgres-backed KVStore (pgx stdlib driver).
type SQLKVStore struct {
	DB *sql.DB
}

func NewSQLKVStore(db *sql.DB) *SQLKVStore {
	return &SQLKVStore{DB: db}
}

func (s *SQLKVStore) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "kv.postgres.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("kv store: db is nil")
	}

	var value []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM kv_store
	WHERE key = $1;
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv %q: query kv_store table: %w", key, err)
	}

	return value, true, nil
}

func (s *SQLKVStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.postgres.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("set kv: empty key")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`, key, value)
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}

	return nil
}
