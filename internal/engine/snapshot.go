package engine

import (
	"trip-planner-service/internal/domain"
)

// Snapshot is the engine's serializable canonical state: the inputs and the
// mutation-owned tuple. Derived data (plan, groups, legs) is rebuilt on
// restore rather than stored.
type Snapshot struct {
	Input     domain.TripInput            `json:"input"`
	Stops     []string                    `json:"stops"`
	Nights    []int                       `json:"nights"`
	Points    []domain.MapPoint           `json:"map_points"`
	StartDate string                      `json:"start_date"`
	Details   map[string]domain.DayDetail `json:"day_details"`
	StopOpen  []bool                      `json:"stop_open"`
}

// Snapshot captures the current canonical state for session storage or
// itinerary persistence.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Input:     e.input,
		Stops:     append([]string(nil), e.stops...),
		Nights:    append([]int(nil), e.nights...),
		Points:    append([]domain.MapPoint(nil), e.points...),
		StartDate: e.startDate,
		Details:   copyDetails(e.details),
		StopOpen:  append([]bool(nil), e.stopOpen...),
	}
}

// Restore replaces the engine state with a previously captured snapshot and
// regenerates all derived state. Annotations whose key still exists in the
// rebuilt plan survive; the rest are dropped by reconciliation.
func (e *Engine) Restore(snap Snapshot) error {
	if len(snap.Stops) < 2 {
		return &domain.ValidationError{Reason: "snapshot needs at least a start and an end stop"}
	}
	if len(snap.Stops) != len(snap.Nights) || len(snap.Stops) != len(snap.Points) {
		return &domain.ValidationError{Reason: "snapshot stop, night and point lists must be the same length"}
	}

	open := snap.StopOpen
	if len(open) != len(snap.Stops) {
		open = make([]bool, len(snap.Stops))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	previous := e.details
	e.details = copyDetails(snap.Details)
	if err := e.applyLocked(
		append([]string(nil), snap.Stops...),
		append([]int(nil), snap.Nights...),
		append([]domain.MapPoint(nil), snap.Points...),
		snap.StartDate,
		append([]bool(nil), open...),
	); err != nil {
		e.details = previous
		return err
	}
	e.input = snap.Input
	e.input.StartDate = e.startDate
	e.input.EndDate = e.endDate
	return nil
}

// State is the full derived view handed to the presentation layer.
type State struct {
	Input       domain.TripInput            `json:"input"`
	Stops       []string                    `json:"stops"`
	Nights      []int                       `json:"nights"`
	StartDate   string                      `json:"start_date"`
	EndDate     string                      `json:"end_date"`
	Plan        domain.TripPlan             `json:"plan"`
	StopGroups  []domain.StopGroup          `json:"stop_groups"`
	MapPoints   []domain.MapPoint           `json:"map_points"`
	Legs        []domain.TripLeg            `json:"legs"`
	LegsLoading bool                        `json:"legs_loading"`
	DayDetails  map[string]domain.DayDetail `json:"day_details"`
	StopOpen    []bool                      `json:"stop_open"`
}

// State returns a deep copy of the current state; callers can hold it across
// further mutations without observing partial updates.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Input:       e.input,
		Stops:       append([]string(nil), e.stops...),
		Nights:      append([]int(nil), e.nights...),
		StartDate:   e.startDate,
		EndDate:     e.endDate,
		Plan:        append(domain.TripPlan(nil), e.plan...),
		StopGroups:  append([]domain.StopGroup(nil), e.groups...),
		MapPoints:   append([]domain.MapPoint(nil), e.points...),
		Legs:        append([]domain.TripLeg(nil), e.legs...),
		LegsLoading: e.legsLoading,
		DayDetails:  copyDetails(e.details),
		StopOpen:    append([]bool(nil), e.stopOpen...),
	}
}

func copyDetails(in map[string]domain.DayDetail) map[string]domain.DayDetail {
	out := make(map[string]domain.DayDetail, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
