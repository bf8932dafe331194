package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/ports"
)

// SQLite-backed implementation of the ItineraryRepository port. Snapshots are
// stored as opaque JSON; the repository never inspects them.
type SqliteItineraryRepository struct{ DB *sql.DB }

func NewSqliteItineraryRepository(db *sql.DB) *SqliteItineraryRepository {
	return &SqliteItineraryRepository{DB: db}
}

func (s *SqliteItineraryRepository) Save(ctx context.Context, rec ports.ItineraryRecord) error {
	if s.DB == nil {
		return errors.New("itinerary repository: DB is nil")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("itinerary repository: record id is empty")
	}

	query := `
	INSERT INTO itineraries (id, title, snapshot, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET title = excluded.title,
		snapshot = excluded.snapshot;
	`
	if _, err := s.DB.ExecContext(ctx, query, rec.ID, rec.Title, string(rec.Snapshot), rec.CreatedAt); err != nil {
		return fmt.Errorf("save itinerary %q: %w", rec.ID, err)
	}
	return nil
}

func (s *SqliteItineraryRepository) Get(ctx context.Context, id string) (ports.ItineraryRecord, bool, error) {
	if s.DB == nil {
		return ports.ItineraryRecord{}, false, errors.New("itinerary repository: DB is nil")
	}

	query := `
	SELECT id, title, snapshot, created_at
	FROM itineraries
	WHERE id = ?;
	`
	var rec ports.ItineraryRecord
	var snapshot string
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&rec.ID, &rec.Title, &snapshot, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.ItineraryRecord{}, false, nil
		}
		return ports.ItineraryRecord{}, false, fmt.Errorf("get itinerary %q: %w", id, err)
	}
	rec.Snapshot = []byte(snapshot)
	return rec, true, nil
}

// List returns saved itineraries newest first, without snapshot payloads.
func (s *SqliteItineraryRepository) List(ctx context.Context) ([]ports.ItineraryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("itinerary repository: DB is nil")
	}

	query := `
	SELECT id, title, created_at
	FROM itineraries
	ORDER BY created_at DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list itineraries: query itineraries table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.ItineraryRecord, 0, 16)
	for rows.Next() {
		var rec ports.ItineraryRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list itineraries: scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list itineraries: row iteration: %w", err)
	}

	return out, nil
}

func (s *SqliteItineraryRepository) Delete(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("itinerary repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM itineraries WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete itinerary %q: %w", id, err)
	}
	return nil
}
