package domain

// Represents a resolved place returned by the place-resolution service.
// A Location is immutable once resolved; the ID is stable across lookups
// so deduplication by identity is reliable.
type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Aliases []string `json:"aliases,omitempty"`
}

func (l Location) Coordinates() Coordinates { return Coordinates{Lat: l.Lat, Lng: l.Lng} }
