package routing

import (
	"context"
	"sync/atomic"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockRouteProvider returns canned legs or a fixed error, for tests.
type MockRouteProvider struct {
	Legs  []ports.RouteLeg
	Err   error
	calls atomic.Int64
}

func (m *MockRouteProvider) Route(ctx context.Context, coords []domain.Coordinates) ([]ports.RouteLeg, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Legs, nil
}

func (m *MockRouteProvider) Calls() int { return int(m.calls.Load()) }
