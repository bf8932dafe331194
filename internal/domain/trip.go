package domain

// User-supplied trip parameters. Created once per planning session and
// replaced wholesale when start/end/dates change, never partially mutated.
// Dates are calendar dates in YYYY-MM-DD form; the planner is timezone-naive.
type TripInput struct {
	Start         Location `json:"start"`
	End           Location `json:"end"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	WaypointNames []string `json:"waypoint_names,omitempty"`
}

// One calendar day of the itinerary, bound to exactly one stop.
// Days are immutable once produced; the whole plan is regenerated on every
// mutation, never patched in place.
type TripDay struct {
	DayNumber int    `json:"day_number"`
	Date      string `json:"date"`
	Location  string `json:"location"`
}

// Ordered day sequence. DayNumber is contiguous 1..N and Date increases by
// exactly one calendar day per entry.
type TripPlan []TripDay

// A derived, contiguous run of trip days belonging to one stop, used for
// collapsible display. Groups are positional: visiting the same city twice
// yields two groups.
type StopGroup struct {
	StopIndex int    `json:"stop_index"`
	StopName  string `json:"stop_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FirstDay  int    `json:"first_day"` // index into the plan, inclusive
	LastDay   int    `json:"last_day"`  // index into the plan, inclusive
	Nights    int    `json:"nights"`
}

// Per-day user annotations. Ephemeral client state keyed by (date, location);
// entries survive plan regeneration as long as their key still exists.
type DayDetail struct {
	Notes         string `json:"notes"`
	Accommodation string `json:"accommodation"`
	IsOpen        bool   `json:"is_open"`
}

// DayKey builds the composite key a DayDetail is tracked under.
func DayKey(date, location string) string { return date + "|" + location }

// One renderable route point, index-aligned with the stop list. Stops whose
// free-text name never resolved keep their slot with Resolved=false and have
// nothing to render on the map.
type MapPoint struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Name     string  `json:"name"`
	Resolved bool    `json:"resolved"`
}

func (p MapPoint) Coordinates() Coordinates { return Coordinates{Lat: p.Lat, Lng: p.Lng} }

// The computed travel segment between two consecutive route points.
// Estimated marks legs produced by the great-circle fallback rather than the
// road-routing service.
type TripLeg struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	DriveHours float64 `json:"drive_hours"`
	Estimated  bool    `json:"estimated"`
}
