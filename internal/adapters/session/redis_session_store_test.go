package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisSessionStore(mr.Addr(), ttl)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: unexpected error: %v", err)
	}
	return store, mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []byte(`{"stops":["A","B"]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("stored session not found")
	}
	if got := string(raw); got != `{"stops":["A","B"]}` {
		t.Fatalf("snapshot = %s, want stored payload back", got)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, err := store.Get(ctx, "s1"); err != nil || ok {
		t.Fatalf("get after delete = (%v, %v), want miss without error", ok, err)
	}
}

func TestRedisSessionStoreMissingIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	raw, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || raw != nil {
		t.Fatalf("get = (%q, %v), want a clean miss", raw, ok)
	}
}

func TestRedisSessionStoreRejectsEmptyID(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	if err := store.Put(context.Background(), "", []byte("x")); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []byte("payload")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ttl := mr.TTL(sessionKey("s1")); ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := store.Get(ctx, "s1"); err != nil || ok {
		t.Fatalf("get after expiry = (%v, %v), want miss without error", ok, err)
	}
}

func TestRedisSessionStorePutRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []byte("v1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(30 * time.Second)
	if err := store.Put(ctx, "s1", []byte("v2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(45 * time.Second)

	raw, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get = (%v, %v), want refreshed entry to survive", ok, err)
	}
	if string(raw) != "v2" {
		t.Fatalf("snapshot = %s, want latest write", raw)
	}
}
