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

// SQLPlaceStore is the postgres-flavored PlaceResolver implementation, for
// deployments that keep the place directory in postgres (see cmd/dbtool).
type SQLPlaceStore struct {
	DB *sql.DB
}

func NewSQLPlaceStore(db *sql.DB) *SQLPlaceStore {
	return &SQLPlaceStore{DB: db}
}

func (s *SQLPlaceStore) Resolve(ctx context.Context, text string) (_ domain.Location, _ bool, err error) {
	defer obs.Time(ctx, "places.Resolve")(&err)

	if s.DB == nil {
		return domain.Location{}, false, errors.New("place store: db is nil")
	}

	name := strings.TrimSpace(text)
	if name == "" {
		return domain.Location{}, false, nil
	}

	q := `
	SELECT id, name, lat, lng, 0 AS rank
	FROM places
	WHERE lower(name) = lower($1)
	UNION
	SELECT p.id, p.name, p.lat, p.lng, 1 AS rank
	FROM places p
	JOIN place_aliases a ON a.place_id = p.id
	WHERE lower(a.alias) = lower($1)
	ORDER BY rank
	LIMIT 1;
	`
	var loc domain.Location
	var rank int
	row := s.DB.QueryRowContext(ctx, q, name)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng, &rank); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Location{}, false, nil
		}
		return domain.Location{}, false, fmt.Errorf("resolve place %q: %w", name, err)
	}
	return loc, true, nil
}

func (s *SQLPlaceStore) Search(ctx context.Context, query string, limit int) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "places.Search")(&err)

	if s.DB == nil {
		return nil, errors.New("place store: db is nil")
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
		CASE WHEN lower(p.name) LIKE lower($1) THEN 0 ELSE 1 END AS rank
	FROM places p
	LEFT JOIN place_aliases a ON a.place_id = p.id
	WHERE lower(p.name) LIKE lower($2) OR lower(a.alias) LIKE lower($2)
	ORDER BY rank, p.name
	LIMIT $3;
	`
	rows, err := s.DB.QueryContext(ctx, stmt, q+"%", "%"+q+"%", limit)
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
