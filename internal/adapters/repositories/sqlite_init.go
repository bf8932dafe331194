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

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);
	`

	createAliasesQuery := `
	CREATE TABLE IF NOT EXISTS place_aliases (
		place_id TEXT NOT NULL REFERENCES places(id) ON DELETE CASCADE,
		alias TEXT NOT NULL,
		PRIMARY KEY (place_id, alias)
	);
	`

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		snapshot TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createNameIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);
	`

	createAliasIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_place_aliases_alias ON place_aliases(alias);
	`

	statements := []string{
		createPlacesQuery,
		createAliasesQuery,
		createItinerariesQuery,
		createNameIndexQuery,
		createAliasIndexQuery,
	}

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

type PlaceSeed struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Aliases []string `json:"aliases"`
}

// Populate the place directory from a JSON file. Seeds without an explicit id
// get a generated one; re-seeding with the same ids is idempotent.
func SeedPlacesFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	rows := make([]PlaceSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		if strings.TrimSpace(item.ID) == "" {
			item.ID = uuid.NewString()
		}
		item.Name = name
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO places (id, name, lat, lng)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare place insert: %w", err)
	}
	defer placeStmt.Close()

	aliasStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO place_aliases (place_id, alias)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed places: prepare alias insert: %w", err)
	}
	defer aliasStmt.Close()

	for _, p := range rows {
		if _, err := placeStmt.Exec(p.ID, p.Name, p.Lat, p.Lng); err != nil {
			return fmt.Errorf("seed places: insert place %q: %w", p.Name, err)
		}
		for _, alias := range p.Aliases {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			if _, err := aliasStmt.Exec(p.ID, alias); err != nil {
				return fmt.Errorf("seed places: insert alias %q for %q: %w", alias, p.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
