package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"trip-planner-service/internal/engine"
	"trip-planner-service/internal/ports"
)

// SessionManager owns one planning engine per user session. Engines live in
// process; every mutation also writes the engine's snapshot to the session
// store, so a session can be rehydrated after a restart or a navigation
// round-trip. Each session is single-user; the engine serializes its own
// mutations.
type SessionManager struct {
	mu      sync.Mutex
	engines map[string]*engine.Engine

	store    ports.SessionStore
	resolver ports.PlaceResolver
	routes   ports.RouteProvider
}

func NewSessionManager(store ports.SessionStore, resolver ports.PlaceResolver, routes ports.RouteProvider) *SessionManager {
	return &SessionManager{
		engines:  make(map[string]*engine.Engine),
		store:    store,
		resolver: resolver,
		routes:   routes,
	}
}

// Create registers a fresh session and returns its id.
func (m *SessionManager) Create() string {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.engines[id] = engine.New(m.resolver, m.routes)
	return id
}

// Get returns the engine for a session, rehydrating it from the session
// store when the process no longer holds it in memory.
func (m *SessionManager) Get(ctx context.Context, id string) (*engine.Engine, bool, error) {
	m.mu.Lock()
	if eng, ok := m.engines[id]; ok {
		m.mu.Unlock()
		return eng, true, nil
	}
	m.mu.Unlock()

	raw, found, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("get session %q: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("get session %q: parse snapshot: %w", id, err)
	}

	eng := engine.New(m.resolver, m.routes)
	if err := eng.Restore(snap); err != nil {
		return nil, false, fmt.Errorf("get session %q: restore snapshot: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have rehydrated concurrently; keep the first one.
	if existing, ok := m.engines[id]; ok {
		return existing, true, nil
	}
	m.engines[id] = eng
	return eng, true, nil
}

// Persist writes the session's current snapshot to the session store.
// Failures are logged, not surfaced: the in-memory engine stays authoritative
// and the next mutation retries anyway.
func (m *SessionManager) Persist(ctx context.Context, id string, eng *engine.Engine) {
	raw, err := json.Marshal(eng.Snapshot())
	if err != nil {
		log.Printf("session snapshot marshal failed: session=%s err=%v", id, err)
		return
	}
	if err := m.store.Put(ctx, id, raw); err != nil {
		log.Printf("session snapshot write failed: session=%s err=%v", id, err)
	}
}
