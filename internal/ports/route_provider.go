package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Road-network distance and drive time for one route segment.
type RouteLeg struct {
	DistanceKm float64
	DriveHours float64
}

// Contract for the external road-routing service. Any error (non-2xx,
// timeout, network) makes the caller fall back to a great-circle estimate.
type RouteProvider interface {
	// Route returns one leg per consecutive coordinate pair,
	// len(coords)-1 legs in order.
	Route(ctx context.Context, coords []domain.Coordinates) ([]RouteLeg, error)
}
