package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLite-backed implementation of the PlaceResolver port over a places table
// with a companion alias table.
type SqlitePlaceStore struct {
	DB *sql.DB
}

func NewSqlitePlaceStore(db *sql.DB) *SqlitePlaceStore {
	return &SqlitePlaceStore{DB: db}
}

// Resolve matches free text case-insensitively against canonical names and
// aliases. Canonical name matches win over alias matches.
func (s *SqlitePlaceStore) Resolve(ctx context.Context, text string) (_ domain.Location, _ bool, err error) {
	defer obs.Time(ctx, "places.Resolve")(&err)

	if s.DB == nil {
		return domain.Location{}, false, errors.New("place store: DB is nil")
	}

	name := strings.TrimSpace(text)
	if name == "" {
		return domain.Location{}, false, nil
	}

	query := `
	SELECT id, name, lat, lng, 0 AS rank
	FROM places
	WHERE lower(name) = lower(?)
	UNION
	SELECT p.id, p.name, p.lat, p.lng, 1 AS rank
	FROM places p
	JOIN place_aliases a ON a.place_id = p.id
	WHERE lower(a.alias) = lower(?)
	ORDER BY rank
	LIMIT 1;
	`
	var loc domain.Location
	var rank int
	row := s.DB.QueryRowContext(ctx, query, name, name)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng, &rank); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Location{}, false, nil
		}
		return domain.Location{}, false, fmt.Errorf("resolve place %q: %w", name, err)
	}
	return loc, true, nil
}

// Search returns up to limit places whose name or alias contains the query,
// prefix matches first, then alphabetically.
func (s *SqlitePlaceStore) Search(ctx context.Context, query string, limit int) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "places.Search")(&err)

	if s.DB == nil {
		return nil, errors.New("place store: DB is nil")
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.Location{}, nil
	}
	if limit < 1 {
		limit = 10
	}

	stmt := `
	SELECT DISTINCT p.id, p.name, p.lat, p.lng,
		CASE WHEN lower(p.name) LIKE lower(?) THEN 0 ELSE 1 END AS rank
	FROM places p
	LEFT JOIN place_aliases a ON a.place_id = p.id
	WHERE lower(p.name) LIKE lower(?) OR lower(a.alias) LIKE lower(?)
	ORDER BY rank, p.name
	LIMIT ?;
	`
	prefix := q + "%"
	contains := "%" + q + "%"

	rows, err := s.DB.QueryContext(ctx, stmt, prefix, contains, contains, limit)
	if err != nil {
		return nil, fmt.Errorf("search places %q: query places table: %w", q, err)
	}
	defer rows.Close()

	out := make([]domain.Location, 0, limit)
	for rows.Next() {
		var loc domain.Location
		var rank int
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng, &rank); err != nil {
			return nil, fmt.Errorf("search places %q: scan row: %w", q, err)
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search places %q: row iteration: %w", q, err)
	}

	return out, nil
}
