package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions API. Provider failures are expected and recoverable: the leg
// computer degrades to a great-circle estimate, so errors here are reported,
// never retried forever.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Segments []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"segments"`
	} `json:"routes"`
}

// Route fetches road-network legs for the ordered coordinate list,
// one segment per consecutive pair.
func (o *ORSRouteProvider) Route(ctx context.Context, coords []domain.Coordinates) (_ []ports.RouteLeg, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if len(coords) < 2 {
		return []ports.RouteLeg{}, nil
	}

	body := directionsRequest{Coordinates: make([][]float64, 0, len(coords))}
	for _, c := range coords {
		body.Coordinates = append(body.Coordinates, c.CoordsToList())
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ORS route: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, &domain.ExternalServiceFailure{Service: "routing", Err: err}
	}
	defer resp.Body.Close()

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &domain.ExternalServiceFailure{Service: "routing", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Routes) == 0 {
		return nil, &domain.ExternalServiceFailure{Service: "routing", Err: errors.New("response contains no routes")}
	}

	segments := parsed.Routes[0].Segments
	if len(segments) != len(coords)-1 {
		return nil, &domain.ExternalServiceFailure{
			Service: "routing",
			Err:     fmt.Errorf("expected %d segments, got %d", len(coords)-1, len(segments)),
		}
	}

	legs := make([]ports.RouteLeg, 0, len(segments))
	for _, s := range segments {
		legs = append(legs, ports.RouteLeg{
			DistanceKm: s.Distance / 1000,
			DriveHours: s.Duration / 3600,
		})
	}
	return legs, nil
}
