package services

import (
	"context"
	"log"
	"math"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const (
	earthRadiusKm = 6371.0
	// Assumed average highway speed for the great-circle fallback estimate.
	fallbackSpeedKmh = 85.0
)

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ComputeLegs converts ordered route points into drive legs.
//
// The road-routing provider is preferred; on any provider failure (network,
// timeout, malformed response) every consecutive pair gets a great-circle
// estimate with drive time distanceKm/85h, marked Estimated. The fallback
// never fails, so the result is always a usable leg set.
func ComputeLegs(ctx context.Context, points []domain.MapPoint, provider ports.RouteProvider) []domain.TripLeg {
	if len(points) < 2 {
		return []domain.TripLeg{}
	}

	if provider != nil {
		coords := make([]domain.Coordinates, len(points))
		for i, p := range points {
			coords[i] = p.Coordinates()
		}

		routed, err := provider.Route(ctx, coords)
		if err == nil && len(routed) == len(points)-1 {
			legs := make([]domain.TripLeg, len(routed))
			for i, r := range routed {
				legs[i] = domain.TripLeg{
					From:       points[i].Name,
					To:         points[i+1].Name,
					DistanceKm: r.DistanceKm,
					DriveHours: r.DriveHours,
				}
			}
			return legs
		}
		if err != nil {
			log.Printf("route provider failed, using great-circle estimate: %v", err)
		} else {
			log.Printf("route provider returned %d legs for %d points, using great-circle estimate",
				len(routed), len(points))
		}
	}

	legs := make([]domain.TripLeg, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		km := Haversine(points[i].Coordinates(), points[i+1].Coordinates())
		legs = append(legs, domain.TripLeg{
			From:       points[i].Name,
			To:         points[i+1].Name,
			DistanceKm: km,
			DriveHours: km / fallbackSpeedKmh,
			Estimated:  true,
		})
	}
	return legs
}
