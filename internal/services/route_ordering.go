package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Waypoints ordered along the start->end line.
type OrderedRoute struct {
	// Names holds the canonical names of resolved waypoints in geometric
	// order, followed by unmatched raw names in their original input order.
	// Unknown text is never dropped so the user doesn't lose input.
	Names []string
	// Matched holds the resolved locations, index-aligned with the resolved
	// prefix of Names.
	Matched []domain.Location
}

// OrderWaypointsByRoute projects each resolvable waypoint onto the start->end
// direction vector and sorts ascending by scalar projection, so earlier
// progress along the straight line comes first. Ties keep input order.
//
// This is a 2-D linear projection, not a traveling-salesman solver; the goal
// is a sensible order, not an optimal one. Resolver failures degrade to
// "unrecognized waypoint, kept as free text" rather than blocking ordering.
func OrderWaypointsByRoute(
	ctx context.Context,
	start domain.Location,
	end domain.Location,
	rawNames []string,
	resolver ports.PlaceResolver,
) OrderedRoute {
	if len(rawNames) == 0 {
		return OrderedRoute{}
	}

	type candidate struct {
		loc        domain.Location
		projection float64
	}

	seen := make(map[string]struct{})
	matched := make([]candidate, 0, len(rawNames))
	unmatched := make([]string, 0)

	for _, raw := range rawNames {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		loc, ok, err := resolver.Resolve(ctx, name)
		if err != nil {
			log.Printf("place resolution failed for %q, keeping as free text: %v", name, err)
			unmatched = append(unmatched, name)
			continue
		}
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}

		// Dedup by stable place identity, first occurrence wins.
		if _, dup := seen[loc.ID]; dup {
			continue
		}
		seen[loc.ID] = struct{}{}
		matched = append(matched, candidate{loc: loc})
	}

	dLat := end.Lat - start.Lat
	dLng := end.Lng - start.Lng
	norm := math.Hypot(dLat, dLng)
	if norm == 0 {
		// Start equals end: treat the direction as unit length so every
		// projection is well-defined (and zero).
		norm = 1
	}
	dLat /= norm
	dLng /= norm

	for i := range matched {
		m := &matched[i]
		m.projection = (m.loc.Lat-start.Lat)*dLat + (m.loc.Lng-start.Lng)*dLng
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].projection < matched[b].projection
	})

	out := OrderedRoute{
		Names:   make([]string, 0, len(matched)+len(unmatched)),
		Matched: make([]domain.Location, 0, len(matched)),
	}
	for _, m := range matched {
		out.Names = append(out.Names, m.loc.Name)
		out.Matched = append(out.Matched, m.loc)
	}
	out.Names = append(out.Names, unmatched...)
	return out
}
