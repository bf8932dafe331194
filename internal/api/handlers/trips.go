package handlers

import (
	"math"
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/engine"
	"trip-planner-service/internal/ports"
)

// TripHandler exposes the planning engine's operations over HTTP, one
// session per itinerary being edited.
type TripHandler struct {
	Manager  *SessionManager
	Resolver ports.PlaceResolver
}

// CreateSession opens a fresh planning session.
func (h *TripHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.Manager.Create()
	writeJSON(w, r, http.StatusCreated, dto.CreateSessionResponse{SessionID: id})
}

// State returns the full derived view of one session.
func (h *TripHandler) State(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, eng.State())
}

// Submit runs initial trip generation: waypoint ordering, night allocation
// and the first plan build.
func (h *TripHandler) Submit(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := eng.Submit(r.Context(), engine.SubmitRequest{
		Start:     req.Start,
		End:       req.End,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Waypoints: req.Waypoints,
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// ChangeNights adjusts the nights spent at one stop.
func (h *TripHandler) ChangeNights(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.ChangeNightsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := eng.ChangeNights(req.StopIndex, int(math.Floor(req.Nights))); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// RemoveStop removes an interior stop from the route.
func (h *TripHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.RemoveStopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := eng.RemoveStop(req.StopIndex); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// AddStop resolves a place name and inserts it after the given stop index
// with a default of one night.
func (h *TripHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.AddStopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	loc, found, err := h.Resolver.Resolve(r.Context(), req.Name)
	if err != nil {
		writeEngineError(w, r, &domain.ExternalServiceFailure{Service: "places", Err: err})
		return
	}
	if !found {
		writeError(w, r, http.StatusUnprocessableEntity, "unknown place: "+req.Name)
		return
	}

	if err := eng.AddStop(req.AfterIndex, loc); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// ReorderStop moves an interior stop to a new interior position.
func (h *TripHandler) ReorderStop(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.ReorderStopRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := eng.ReorderStop(req.FromIndex, req.ToIndex); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// UpdateDayNotes replaces one day's notes. Pure annotation update, no plan
// rebuild.
func (h *TripHandler) UpdateDayNotes(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.DayNotesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	eng.UpdateDayNotes(req.Date, req.Location, req.Notes)
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// UpdateDayAccommodation replaces one day's accommodation.
func (h *TripHandler) UpdateDayAccommodation(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.DayAccommodationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	eng.UpdateDayAccommodation(req.Date, req.Location, req.Accommodation)
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// ToggleDayOpen flips one day's expanded flag.
func (h *TripHandler) ToggleDayOpen(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.DayToggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	eng.ToggleDayOpen(req.Date, req.Location)
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// ToggleStopOpen flips one stop group's collapsed/expanded flag.
func (h *TripHandler) ToggleStopOpen(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.StopToggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	eng.ToggleStopOpen(req.StopIndex)
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// ExpandAll opens every stop group.
func (h *TripHandler) ExpandAll(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}
	eng.ExpandAll()
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

// CollapseAll closes every stop group.
func (h *TripHandler) CollapseAll(w http.ResponseWriter, r *http.Request) {
	eng, ok := h.session(w, r)
	if !ok {
		return
	}
	eng.CollapseAll()
	h.Manager.Persist(r.Context(), r.PathValue("id"), eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}

func (h *TripHandler) session(w http.ResponseWriter, r *http.Request) (*engine.Engine, bool) {
	id := r.PathValue("id")
	eng, found, err := h.Manager.Get(r.Context(), id)
	if err != nil {
		writeEngineError(w, r, err)
		return nil, false
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return eng, true
}
