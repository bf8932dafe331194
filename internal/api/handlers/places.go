package handlers

import (
	"net/http"
	"strconv"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/ports"
)

type PlaceHandler struct {
	Resolver ports.PlaceResolver
}

// Search returns ranked place candidates for a partial query.
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	locs, err := h.Resolver.Search(r.Context(), q, limit)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.SearchPlacesResponse{Places: locs})
}
