package repositories

import (
	"context"
	"database/sql"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the KVStore port.
type SqliteKVStore struct{ DB *sql.DB }

func NewSqliteKVStore(db *sql.DB) *SqliteKVStore {
	return &SqliteKVStore{DB: db}
}

func (s *SqliteKVStore) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "kv.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("sqlite kv store: DB is nil")
	}

	var value []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM kv_store
	WHERE key = ?;
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv %q: query kv_store table: %w", key, err)
	}

	return value, true, nil
}

func (s *SqliteKVStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.sqlite.Set")(&err)

	if s.DB == nil {
		return errors.New("sqlite kv store: DB is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("set kv: empty key")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO kv_store (
		key,
		value,
		updated_at
	)
	VALUES (?, ?, CURRENT_TIMESTAMP);
	`, key, value)
	if err != nil {
		return fmt.Errorf("set kv %q: %w", key, err)
	}

	return nil
}
