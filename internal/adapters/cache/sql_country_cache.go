package cache

import (
	"context"
	"database/sql"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// SQLCountryCache is a Postgres-backed cache mapping coordinate cells to
// country short codes.
type SQLCountryCache struct {
	DB *sql.DB
}

func NewSQLCountryCache(db *sql.DB) *SQLCountryCache {
	return &SQLCountryCache{DB: db}
}

// Fetch the cached country code for a cell.
func (s *SQLCountryCache) Get(ctx context.Context, cell string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "country.cache.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("country cache: db is nil")
	}

	var code string
	err = s.DB.QueryRowContext(ctx, `
	SELECT country_code
	FROM country_cache
	WHERE cell = $1;
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
func (s *SQLCountryCache) Put(ctx context.Context, cell, code string) error {
	if s.DB == nil {
		return errors.New("country cache: db is nil")
	}
	if strings.TrimSpace(cell) == "" {
		return fmt.Errorf("insert country cache: empty cell key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO country_cache (cell, country_code, resolved_at)
	VALUES ($1, $2, now())
	ON CONFLICT (cell) DO UPDATE
	SET country_code = EXCLUDED.country_code,
		resolved_at = EXCLUDED.resolved_at;
	`, cell, code)
	if err != nil {
		return fmt.Errorf("insert country cache cell=%q: %w", cell, err)
	}

	return nil
}
