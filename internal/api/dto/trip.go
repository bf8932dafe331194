package dto

import "trip-planner-service/internal/domain"

type SubmitRequest struct {
	Start     domain.Location `json:"start"`
	End       domain.Location `json:"end"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Waypoints []string        `json:"waypoints"`
}

// Nights arrives as a JSON number; fractional values are floored before they
// reach the engine, which additionally clamps to a minimum of 1.
type ChangeNightsRequest struct {
	StopIndex int     `json:"stop_index"`
	Nights    float64 `json:"nights"`
}

type RemoveStopRequest struct {
	StopIndex int `json:"stop_index"`
}

type AddStopRequest struct {
	AfterIndex int    `json:"after_index"`
	Name       string `json:"name"`
}

type ReorderStopRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

type DayNotesRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type DayAccommodationRequest struct {
	Date          string `json:"date"`
	Location      string `json:"location"`
	Accommodation string `json:"accommodation"`
}

type DayToggleRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

type StopToggleRequest struct {
	StopIndex int `json:"stop_index"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type SaveItineraryRequest struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
}

type SaveItineraryResponse struct {
	ID string `json:"id"`
}

type ItinerarySummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type ListItinerariesResponse struct {
	Itineraries []ItinerarySummary `json:"itineraries"`
}

type RestoreItineraryRequest struct {
	ItineraryID string `json:"itinerary_id"`
}

type SearchPlacesResponse struct {
	Places []domain.Location `json:"places"`
}
