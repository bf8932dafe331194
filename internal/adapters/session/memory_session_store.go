package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryEntry struct {
	snapshot  []byte
	expiresAt time.Time
}

// MemorySessionStore is a process-local SessionStore for single-instance
// deployments and tests. Expired entries are dropped lazily on access.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemorySessionStore) Put(ctx context.Context, id string, snapshot []byte) error {
	if id == "" {
		return errors.New("session store: id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{
		snapshot:  append([]byte(nil), snapshot...),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, false, nil
	}
	return append([]byte(nil), entry.snapshot...), true, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
