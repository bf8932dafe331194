package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps in-progress plan snapshots in Redis with a TTL, so
// an unsaved plan survives a navigation round-trip but abandoned sessions
// expire on their own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(addr string, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies connectivity; the composition root calls it at startup.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session store: ping redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Put(ctx context.Context, id string, snapshot []byte) error {
	if id == "" {
		return errors.New("session store: id is empty")
	}
	if err := s.client.Set(ctx, sessionKey(id), snapshot, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: put %q: %w", id, err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session store: get %q: %w", id, err)
	}
	return raw, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session store: delete %q: %w", id, err)
	}
	return nil
}

func sessionKey(id string) string { return "trip:session:" + id }
