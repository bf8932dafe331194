package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"trip-planner-service/internal/adapters/places"
	"trip-planner-service/internal/domain"
)

var orderingPlaces = []domain.Location{
	{ID: "w1", Name: "W1", Lat: 0, Lng: 7},
	{ID: "w2", Name: "W2", Lat: 0, Lng: 3, Aliases: []string{"Double U Two"}},
	{ID: "w3", Name: "W3", Lat: 1, Lng: 5},
}

func TestOrderWaypointsByRoute(t *testing.T) {
	resolver := places.NewMemoryPlaceStore(orderingPlaces)
	start := domain.Location{ID: "s", Name: "Start", Lat: 0, Lng: 0}
	end := domain.Location{ID: "e", Name: "End", Lat: 0, Lng: 10}

	got := OrderWaypointsByRoute(context.Background(), start, end, []string{"W1", "W2"}, resolver)
	if !reflect.DeepEqual(got.Names, []string{"W2", "W1"}) {
		t.Fatalf("order = %v, want [W2 W1]", got.Names)
	}
	if len(got.Matched) != 2 || got.Matched[0].ID != "w2" {
		t.Fatalf("matched = %+v, want W2 first", got.Matched)
	}

	// A permutation of already-ordered input comes back in the same
	// geometric order.
	again := OrderWaypointsByRoute(context.Background(), start, end, []string{"W2", "W1"}, resolver)
	if !reflect.DeepEqual(again.Names, got.Names) {
		t.Fatalf("permuted input reordered to %v, want %v", again.Names, got.Names)
	}
}

func TestOrderWaypointsKeepsUnmatched(t *testing.T) {
	resolver := places.NewMemoryPlaceStore(orderingPlaces)
	start := domain.Location{Name: "Start", Lat: 0, Lng: 0}
	end := domain.Location{Name: "End", Lat: 0, Lng: 10}

	got := OrderWaypointsByRoute(context.Background(), start, end,
		[]string{"Atlantis", "W1", "Narnia"}, resolver)
	if !reflect.DeepEqual(got.Names, []string{"W1", "Atlantis", "Narnia"}) {
		t.Fatalf("order = %v, want matched first then unmatched in input order", got.Names)
	}
	if len(got.Matched) != 1 {
		t.Fatalf("matched = %d entries, want 1", len(got.Matched))
	}
}

func TestOrderWaypointsAliasAndDedup(t *testing.T) {
	resolver := places.NewMemoryPlaceStore(orderingPlaces)
	start := domain.Location{Name: "Start", Lat: 0, Lng: 0}
	end := domain.Location{Name: "End", Lat: 0, Lng: 10}

	// "Double U Two" resolves to the same place as "w2"; the duplicate is
	// dropped, first occurrence wins.
	got := OrderWaypointsByRoute(context.Background(), start, end,
		[]string{"Double U Two", "w2", "W1"}, resolver)
	if !reflect.DeepEqual(got.Names, []string{"W2", "W1"}) {
		t.Fatalf("order = %v, want [W2 W1]", got.Names)
	}
}

func TestOrderWaypointsEdgeCases(t *testing.T) {
	resolver := places.NewMemoryPlaceStore(orderingPlaces)
	start := domain.Location{Name: "Start", Lat: 0, Lng: 0}
	end := domain.Location{Name: "End", Lat: 0, Lng: 10}

	if got := OrderWaypointsByRoute(context.Background(), start, end, nil, resolver); len(got.Names) != 0 {
		t.Fatalf("no waypoints should return empty ordering, got %v", got.Names)
	}

	// Nothing resolves: raw names come back unchanged, nothing to map.
	got := OrderWaypointsByRoute(context.Background(), start, end, []string{"X", "Y"}, resolver)
	if !reflect.DeepEqual(got.Names, []string{"X", "Y"}) || len(got.Matched) != 0 {
		t.Fatalf("unresolvable input = %v (matched %d), want unchanged and no matches", got.Names, len(got.Matched))
	}

	// Start equals end: projection is degenerate but ordering still works.
	same := OrderWaypointsByRoute(context.Background(), start, start, []string{"W1", "W2"}, resolver)
	if len(same.Names) != 2 {
		t.Fatalf("degenerate direction lost waypoints: %v", same.Names)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(ctx context.Context, text string) (domain.Location, bool, error) {
	return domain.Location{}, false, errors.New("directory down")
}

func (failingResolver) Search(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	return nil, errors.New("directory down")
}

func TestOrderWaypointsResolverFailureDegrades(t *testing.T) {
	start := domain.Location{Name: "Start", Lat: 0, Lng: 0}
	end := domain.Location{Name: "End", Lat: 0, Lng: 10}

	got := OrderWaypointsByRoute(context.Background(), start, end, []string{"W1", "W2"}, failingResolver{})
	if !reflect.DeepEqual(got.Names, []string{"W1", "W2"}) {
		t.Fatalf("resolver failure must keep raw names, got %v", got.Names)
	}
}
