package ports

import "context"

// Port: ephemeral storage for in-progress, unsaved plans so a session can
// survive a navigation round-trip (e.g., an authentication redirect).
// Entries expire on their own; implementations choose the TTL.
type SessionStore interface {
	Put(ctx context.Context, id string, snapshot []byte) error
	// Get reports found=false for missing or expired sessions.
	Get(ctx context.Context, id string) (snapshot []byte, found bool, err error)
	Delete(ctx context.Context, id string) error
}
