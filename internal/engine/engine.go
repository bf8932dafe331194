package engine

import (
	"context"
	"sync"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// Engine owns all mutable planning state for one user session: the ordered
// stop list, the nights array, the map points, the generated plan, per-day
// annotations and the stop open/closed UI flags.
//
// Every mutation is a total function over that tuple and is applied
// all-or-nothing: validation happens against candidate slices before any
// field is touched, then plan, details, groups and end date are rebuilt
// together. Leg recomputation is the one asynchronous boundary; each issue
// carries a generation number and stale responses are discarded, so legs can
// lag the current route but can never belong to a previous one.
//
// All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	input    domain.TripInput
	stops    []string
	nights   []int
	points   []domain.MapPoint
	plan     domain.TripPlan
	groups   []domain.StopGroup
	details  map[string]domain.DayDetail
	stopOpen []bool

	startDate string
	endDate   string

	legs        []domain.TripLeg
	legsLoading bool
	legGen      uint64
	legWait     sync.WaitGroup

	resolver ports.PlaceResolver
	routes   ports.RouteProvider
}

func New(resolver ports.PlaceResolver, routes ports.RouteProvider) *Engine {
	return &Engine{
		details: make(map[string]domain.DayDetail),
		legs:    []domain.TripLeg{},

		resolver: resolver,
		routes:   routes,
	}
}

// SubmitRequest carries the initial trip parameters. Start and End come from
// place selection and are already resolved; waypoint names are free text.
type SubmitRequest struct {
	Start     domain.Location
	End       domain.Location
	StartDate string
	EndDate   string
	Waypoints []string
}

// Submit validates the request, orders the waypoints along the start->end
// line, allocates nights and generates the initial plan. On any validation
// failure the engine state is left untouched.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) error {
	if req.Start.Name == "" || req.End.Name == "" {
		return &domain.ValidationError{Reason: "start and end locations are required"}
	}
	if req.StartDate == "" || req.EndDate == "" {
		return &domain.ValidationError{Reason: "start and end dates are required"}
	}

	totalDays, err := services.CountDaysInclusive(req.StartDate, req.EndDate)
	if err != nil {
		return &domain.ValidationError{Reason: err.Error()}
	}
	if totalDays < 1 {
		return &domain.ValidationError{Reason: "end date must not be before start date"}
	}

	ordered := services.OrderWaypointsByRoute(ctx, req.Start, req.End, req.Waypoints, e.resolver)

	stops := make([]string, 0, len(ordered.Names)+2)
	stops = append(stops, req.Start.Name)
	stops = append(stops, ordered.Names...)
	stops = append(stops, req.End.Name)

	points := make([]domain.MapPoint, 0, len(stops))
	points = append(points, locationPoint(req.Start))
	for _, name := range ordered.Names {
		points = append(points, waypointPoint(name, ordered.Matched))
	}
	points = append(points, locationPoint(req.End))

	nights, err := services.AllocateNights(len(stops), totalDays)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.applyLocked(stops, nights, points, req.StartDate, make([]bool, len(stops))); err != nil {
		return err
	}
	e.input = domain.TripInput{
		Start:         req.Start,
		End:           req.End,
		StartDate:     e.startDate,
		EndDate:       e.endDate,
		WaypointNames: append([]string(nil), req.Waypoints...),
	}
	return nil
}

// ChangeNights sets the nights spent at one stop. Out-of-range indices are a
// no-op; values below 1 are clamped to 1. Start and end stops are adjustable
// here, unlike removal. The trip end date is recomputed from the new plan.
func (e *Engine) ChangeNights(stopIndex, nights int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stopIndex < 0 || stopIndex >= len(e.stops) {
		return nil
	}
	if nights < 1 {
		nights = 1
	}

	next := append([]int(nil), e.nights...)
	next[stopIndex] = nights
	return e.applyLocked(e.stops, next, e.points, e.startDate, e.stopOpen)
}

// RemoveStop splices an interior stop out of the route. The first and last
// stops are never removable. Stop open state resets because indices shift.
func (e *Engine) RemoveStop(stopIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stopIndex <= 0 || stopIndex >= len(e.stops)-1 {
		return &domain.InvalidOperationError{Reason: "cannot remove the route start or end"}
	}

	stops := spliceOut(e.stops, stopIndex)
	nights := spliceOut(e.nights, stopIndex)
	points := spliceOut(e.points, stopIndex)
	return e.applyLocked(stops, nights, points, e.startDate, make([]bool, len(stops)))
}

// AddStop inserts a resolved location after the given index with a default of
// one night. Adding after the final stop is rejected. Stop open state resets.
func (e *Engine) AddStop(afterIndex int, loc domain.Location) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if afterIndex < 0 || afterIndex >= len(e.stops)-1 {
		return &domain.InvalidOperationError{Reason: "cannot add a stop after the route end"}
	}

	at := afterIndex + 1
	stops := spliceIn(e.stops, at, loc.Name)
	nights := spliceIn(e.nights, at, 1)
	points := spliceIn(e.points, at, locationPoint(loc))
	return e.applyLocked(stops, nights, points, e.startDate, make([]bool, len(stops)))
}

// ReorderStop moves an interior stop to a new interior position. Both indices
// are clamped into [1, len-2]; moves that clamp to the same slot, or routes
// with no interior stops, are a no-op. Open/closed flags migrate by matching
// stop names between the old and new order, each old flag claiming at most
// one new index.
func (e *Engine) ReorderStop(fromIndex, toIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.stops) < 3 {
		return nil
	}
	from := clamp(fromIndex, 1, len(e.stops)-2)
	to := clamp(toIndex, 1, len(e.stops)-2)
	if from == to {
		return nil
	}

	stops := moveElement(e.stops, from, to)
	nights := moveElement(e.nights, from, to)
	points := moveElement(e.points, from, to)

	open := migrateOpenState(e.stops, e.stopOpen, stops)
	return e.applyLocked(stops, nights, points, e.startDate, open)
}

// ToggleDayOpen flips the open flag of one day's annotation entry.
// Unknown keys are ignored; the details map only holds keys present in the
// current plan.
func (e *Engine) ToggleDayOpen(date, location string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := domain.DayKey(date, location)
	if detail, ok := e.details[key]; ok {
		detail.IsOpen = !detail.IsOpen
		e.details[key] = detail
	}
}

// UpdateDayNotes replaces the notes of one day's annotation entry.
func (e *Engine) UpdateDayNotes(date, location, notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := domain.DayKey(date, location)
	if detail, ok := e.details[key]; ok {
		detail.Notes = notes
		e.details[key] = detail
	}
}

// UpdateDayAccommodation replaces the accommodation of one day's entry.
func (e *Engine) UpdateDayAccommodation(date, location, accommodation string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := domain.DayKey(date, location)
	if detail, ok := e.details[key]; ok {
		detail.Accommodation = accommodation
		e.details[key] = detail
	}
}

// ToggleStopOpen flips one stop group's collapsed/expanded flag.
func (e *Engine) ToggleStopOpen(stopIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stopIndex >= 0 && stopIndex < len(e.stopOpen) {
		e.stopOpen[stopIndex] = !e.stopOpen[stopIndex]
	}
}

// ExpandAll opens every stop group.
func (e *Engine) ExpandAll() { e.setAllOpen(true) }

// CollapseAll closes every stop group.
func (e *Engine) CollapseAll() { e.setAllOpen(false) }

func (e *Engine) setAllOpen(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.stopOpen {
		e.stopOpen[i] = open
	}
}

// applyLocked commits one atomic state transition. All derived state is
// computed from the candidate slices first; nothing is assigned until every
// step has succeeded, so a failed transition leaves the engine untouched.
// Callers hold e.mu.
func (e *Engine) applyLocked(stops []string, nights []int, points []domain.MapPoint, startDate string, open []bool) error {
	plan, err := services.BuildPlan(stops, nights, startDate)
	if err != nil {
		return err
	}
	groups, err := services.GroupByStop(stops, nights, plan)
	if err != nil {
		return err
	}

	e.stops = stops
	e.nights = nights
	e.points = points
	e.startDate = startDate
	e.plan = plan
	e.details = services.ReconcileDetails(plan, e.details)
	e.groups = groups
	e.stopOpen = open
	e.endDate = plan[len(plan)-1].Date
	e.input.StartDate = e.startDate
	e.input.EndDate = e.endDate

	e.startLegRecomputeLocked()
	return nil
}

// startLegRecomputeLocked issues an asynchronous leg computation for the
// current route. The generation check on completion discards responses that
// arrive after a newer mutation, so out-of-order provider replies can never
// overwrite fresher legs. Callers hold e.mu.
func (e *Engine) startLegRecomputeLocked() {
	points := make([]domain.MapPoint, 0, len(e.points))
	for _, p := range e.points {
		if p.Resolved {
			points = append(points, p)
		}
	}

	e.legGen++
	gen := e.legGen
	e.legsLoading = true

	e.legWait.Add(1)
	go func() {
		defer e.legWait.Done()

		legs := services.ComputeLegs(context.Background(), points, e.routes)

		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.legGen {
			// A newer mutation superseded this request.
			return
		}
		e.legs = legs
		e.legsLoading = false
	}()
}

// WaitForLegs blocks until all in-flight leg computations have settled.
func (e *Engine) WaitForLegs() { e.legWait.Wait() }

func locationPoint(loc domain.Location) domain.MapPoint {
	return domain.MapPoint{Lat: loc.Lat, Lng: loc.Lng, Name: loc.Name, Resolved: true}
}

// waypointPoint builds the map point for an ordered waypoint name. Names
// without a resolved location keep their slot so the three parallel arrays
// stay index-aligned, but render nothing on the map.
func waypointPoint(name string, matched []domain.Location) domain.MapPoint {
	for _, loc := range matched {
		if loc.Name == name {
			return locationPoint(loc)
		}
	}
	return domain.MapPoint{Name: name}
}

// migrateOpenState carries open flags across a reorder by stop name.
// Each old flag claims the first unclaimed new index with the same name;
// with duplicate names this is a deterministic best effort.
func migrateOpenState(oldStops []string, oldOpen []bool, newStops []string) []bool {
	open := make([]bool, len(newStops))
	claimed := make([]bool, len(newStops))
	for j, name := range oldStops {
		if j >= len(oldOpen) || !oldOpen[j] {
			continue
		}
		for i, candidate := range newStops {
			if !claimed[i] && candidate == name {
				open[i] = true
				claimed[i] = true
				break
			}
		}
	}
	return open
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func spliceOut[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func spliceIn[T any](s []T, i int, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

func moveElement[T any](s []T, from, to int) []T {
	out := spliceOut(s, from)
	return spliceIn(out, to, s[from])
}
