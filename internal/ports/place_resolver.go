package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for resolving free-text place names against a place directory.
// IDs returned for the same place must be stable across calls so that
// dedup-by-identity works. Debouncing of interactive search queries is the
// caller's concern; implementations answer each query independently.
type PlaceResolver interface {
	// Resolve matches text case-insensitively against canonical names and
	// known aliases. The boolean reports whether a match was found; an error
	// means the directory itself was unavailable.
	Resolve(ctx context.Context, text string) (domain.Location, bool, error)
	// Search returns up to limit ranked candidates for a partial query.
	Search(ctx context.Context, query string, limit int) ([]domain.Location, error)
}
