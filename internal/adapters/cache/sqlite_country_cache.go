package cache

import (
	"context"
	"database/sql"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache mapping coordinate cells to country short codes.
// Cell keys are expected to come from domain.Coordinate.Cell.
type SqliteCountryCache struct {
	DB *sql.DB
}

func NewSqliteCountryCache(db *sql.DB) *SqliteCountryCache {
	return &SqliteCountryCache{DB: db}
}

// Fetch the cached country code for a cell.
func (s *SqliteCountryCache) Get(ctx context.Context, cell string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "country.cache.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("country cache: db is nil")
	}

	var code string
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		country_code
	FROM country_cache
	WHERE cell = ?;
	`, cell).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get country cache: query country_cache table: %w", err)
	}

	return code, true, nil
}

// Store a cell -> country code mapping.
func (s *SqliteCountryCache) Put(ctx context.Context, cell, code string) error {
	if s.DB == nil {
		return errors.New("country cache: db is nil")
	}
	if strings.TrimSpace(cell) == "" {
		return fmt.Errorf("insert country cache: empty cell key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO country_cache (
		cell,
		country_code,
		resolved_at
	)
	VALUES (?, ?, CURRENT_TIMESTAMP);
	`, cell, code)
	if err != nil {
		return fmt.Errorf("insert country cache cell=%q: %w", cell, err)
	}

	return nil
}
