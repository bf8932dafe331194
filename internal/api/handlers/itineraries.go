package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/engine"
	"trip-planner-service/internal/ports"
)

// ItineraryHandler persists and restores named itinerary snapshots.
type ItineraryHandler struct {
	Repo    ports.ItineraryRepository
	Manager *SessionManager
}

// Save stores the named session's current snapshot under a new itinerary id.
func (h *ItineraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveItineraryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}

	eng, found, err := h.Manager.Get(r.Context(), req.SessionID)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return
	}

	raw, err := json.Marshal(eng.Snapshot())
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	rec := ports.ItineraryRecord{
		ID:        uuid.NewString(),
		Title:     title,
		Snapshot:  raw,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Repo.Save(r.Context(), rec); err != nil {
		writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.SaveItineraryResponse{ID: rec.ID})
}

// List returns saved itineraries without snapshot payloads.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Repo.List(r.Context())
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	res := dto.ListItinerariesResponse{Itineraries: make([]dto.ItinerarySummary, 0, len(recs))}
	for _, rec := range recs {
		res.Itineraries = append(res.Itineraries, dto.ItinerarySummary{
			ID:        rec.ID,
			Title:     rec.Title,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Delete removes a saved itinerary.
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// Restore loads a saved itinerary into an existing session, replacing its
// state.
func (h *ItineraryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req dto.RestoreItineraryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := r.PathValue("id")
	eng, found, err := h.Manager.Get(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "unknown session")
		return
	}

	rec, found, err := h.Repo.Get(r.Context(), req.ItineraryID)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "unknown itinerary")
		return
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(rec.Snapshot, &snap); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "itinerary snapshot is not readable")
		return
	}
	if err := eng.Restore(snap); err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.Manager.Persist(r.Context(), sessionID, eng)
	writeJSON(w, r, http.StatusOK, eng.State())
}
