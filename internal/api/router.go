package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(
	resolver ports.PlaceResolver,
	routes ports.RouteProvider,
	sessions ports.SessionStore,
	itineraries ports.ItineraryRepository,
) http.Handler {
	mux := http.NewServeMux()

	manager := handlers.NewSessionManager(sessions, resolver, routes)
	tripHandler := &handlers.TripHandler{Manager: manager, Resolver: resolver}
	placeHandler := &handlers.PlaceHandler{Resolver: resolver}
	itineraryHandler := &handlers.ItineraryHandler{Repo: itineraries, Manager: manager}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /places/search", placeHandler.Search)

	mux.HandleFunc("POST /sessions", tripHandler.CreateSession)
	mux.HandleFunc("GET /sessions/{id}", tripHandler.State)
	mux.HandleFunc("POST /sessions/{id}/submit", tripHandler.Submit)
	mux.HandleFunc("POST /sessions/{id}/nights", tripHandler.ChangeNights)
	mux.HandleFunc("POST /sessions/{id}/stops/add", tripHandler.AddStop)
	mux.HandleFunc("POST /sessions/{id}/stops/remove", tripHandler.RemoveStop)
	mux.HandleFunc("POST /sessions/{id}/stops/reorder", tripHandler.ReorderStop)
	mux.HandleFunc("POST /sessions/{id}/stops/toggle", tripHandler.ToggleStopOpen)
	mux.HandleFunc("POST /sessions/{id}/stops/expand", tripHandler.ExpandAll)
	mux.HandleFunc("POST /sessions/{id}/stops/collapse", tripHandler.CollapseAll)
	mux.HandleFunc("POST /sessions/{id}/days/notes", tripHandler.UpdateDayNotes)
	mux.HandleFunc("POST /sessions/{id}/days/accommodation", tripHandler.UpdateDayAccommodation)
	mux.HandleFunc("POST /sessions/{id}/days/toggle", tripHandler.ToggleDayOpen)
	mux.HandleFunc("POST /sessions/{id}/restore", itineraryHandler.Restore)

	mux.HandleFunc("POST /itineraries", itineraryHandler.Save)
	mux.HandleFunc("GET /itineraries", itineraryHandler.List)
	mux.HandleFunc("DELETE /itineraries/{id}", itineraryHandler.Delete)

	return loggingMiddleware(mux)
}
