package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the postgres place-directory schema (see cmd/dbtool).
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS places (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS place_aliases (
			place_id TEXT NOT NULL REFERENCES places(id) ON DELETE CASCADE,
			alias TEXT NOT NULL,
			PRIMARY KEY (place_id, alias)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);`,
		`CREATE INDEX IF NOT EXISTS idx_place_aliases_alias ON place_aliases(alias);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate the postgres place directory from the same JSON seed format used
// for sqlite.
func SeedPostgresPlacesFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeStmt, err := tx.Prepare(`
	INSERT INTO places (id, name, lat, lng)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare place insert: %w", err)
	}
	defer placeStmt.Close()

	aliasStmt, err := tx.Prepare(`
	INSERT INTO place_aliases (place_id, alias)
	VALUES ($1, $2)
	ON CONFLICT (place_id, alias) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare alias insert: %w", err)
	}
	defer aliasStmt.Close()

	for i, p := range data {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		if strings.TrimSpace(p.ID) == "" {
			p.ID = uuid.NewString()
		}

		if _, err := placeStmt.Exec(p.ID, name, p.Lat, p.Lng); err != nil {
			return fmt.Errorf("seed places: insert place %q: %w", name, err)
		}
		for _, alias := range p.Aliases {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			if _, err := aliasStmt.Exec(p.ID, alias); err != nil {
				return fmt.Errorf("seed places: insert alias %q for %q: %w", alias, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
