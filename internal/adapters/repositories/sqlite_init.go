package repositories

import (
	"database/sql"
	"emergency-response-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS country_cache (
		cell TEXT PRIMARY KEY,
		country_code TEXT NOT NULL,
		resolved_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS country_cache (
		cell TEXT PRIMARY KEY,
		country_code TEXT NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
	})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ContactSeed struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	DialCode string `json:"dial_code"`
}

// Read emergency contacts from a JSON seed file. Entries carrying a
// dial_code have their phone normalized with it.
func ReadContactsSeed(jsonPath string) ([]domain.Contact, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed contacts: read %q: %w", jsonPath, err)
	}

	var data []ContactSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed contacts: parse json: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		phone := strings.TrimSpace(item.Phone)
		if item.DialCode != "" {
			phone = domain.FormatPhone(item.DialCode, phone)
		}

		c := domain.Contact{Name: name, Phone: phone}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("seed contacts: item at index %d: %w", i+1, err)
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}
