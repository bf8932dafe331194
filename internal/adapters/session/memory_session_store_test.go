package session

import (
	"context"
	"testing"
	"time"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []byte("payload")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get = (%v, %v), want hit", ok, err)
	}
	if string(raw) != "payload" {
		t.Fatalf("snapshot = %s, want stored payload", raw)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatal("entry survived delete")
	}
}

func TestMemorySessionStoreCopiesSnapshots(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	payload := []byte("original")
	if err := store.Put(ctx, "s1", payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload[0] = 'X'

	raw, _, _ := store.Get(ctx, "s1")
	if string(raw) != "original" {
		t.Fatalf("snapshot = %s, caller mutation leaked into the store", raw)
	}
	raw[0] = 'Y'
	again, _, _ := store.Get(ctx, "s1")
	if string(again) != "original" {
		t.Fatalf("snapshot = %s, returned slice aliases the store", again)
	}
}

func TestMemorySessionStoreLazyExpiry(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Put(ctx, "s1", []byte("payload")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := store.Get(ctx, "s1"); !ok {
		t.Fatal("entry expired before its ttl")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatal("entry readable after its ttl")
	}
	if len(store.entries) != 0 {
		t.Fatalf("expired entry not dropped, %d entries left", len(store.entries))
	}
}

func TestMemorySessionStoreRejectsEmptyID(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	if err := store.Put(context.Background(), "", []byte("x")); err == nil {
		t.Fatal("expected error for empty session id")
	}
}
