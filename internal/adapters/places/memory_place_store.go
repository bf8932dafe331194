package places

import (
	"context"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
)

// MemoryPlaceStore is an in-memory PlaceResolver for tests and for running
// the server without a seeded database.
type MemoryPlaceStore struct {
	locations []domain.Location
}

func NewMemoryPlaceStore(locations []domain.Location) *MemoryPlaceStore {
	return &MemoryPlaceStore{locations: append([]domain.Location(nil), locations...)}
}

func (m *MemoryPlaceStore) Resolve(ctx context.Context, text string) (domain.Location, bool, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	if name == "" {
		return domain.Location{}, false, nil
	}

	for _, loc := range m.locations {
		if strings.ToLower(loc.Name) == name {
			return loc, true, nil
		}
	}
	for _, loc := range m.locations {
		for _, alias := range loc.Aliases {
			if strings.ToLower(alias) == name {
				return loc, true, nil
			}
		}
	}
	return domain.Location{}, false, nil
}

func (m *MemoryPlaceStore) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Location{}, nil
	}
	if limit < 1 {
		limit = 10
	}

	type ranked struct {
		loc  domain.Location
		rank int
	}
	out := make([]ranked, 0)
	for _, loc := range m.locations {
		name := strings.ToLower(loc.Name)
		switch {
		case strings.HasPrefix(name, q):
			out = append(out, ranked{loc, 0})
		case strings.Contains(name, q) || aliasContains(loc.Aliases, q):
			out = append(out, ranked{loc, 1})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].rank != out[b].rank {
			return out[a].rank < out[b].rank
		}
		return out[a].loc.Name < out[b].loc.Name
	})

	if len(out) > limit {
		out = out[:limit]
	}
	locs := make([]domain.Location, 0, len(out))
	for _, r := range out {
		locs = append(locs, r.loc)
	}
	return locs, nil
}

func aliasContains(aliases []string, q string) bool {
	for _, a := range aliases {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}
