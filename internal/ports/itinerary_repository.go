package ports

import (
	"context"
	"time"
)

// A saved itinerary: a display title plus the engine's serialized snapshot.
type ItineraryRecord struct {
	ID        string
	Title     string
	Snapshot  []byte
	CreatedAt time.Time
}

// Port: a boundary for persisting saved itineraries.
type ItineraryRepository interface {
	Save(ctx context.Context, rec ItineraryRecord) error
	Get(ctx context.Context, id string) (ItineraryRecord, bool, error)
	List(ctx context.Context) ([]ItineraryRecord, error)
	Delete(ctx context.Context, id string) error
}
