package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/pkg/dialog"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "intake:session:"

// SessionStore persists conversation documents as JSON in Redis, one key per
// conversation. Put is read-modify-write: the patch is merged into the
// current document and the whole document rewritten, refreshing the TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) contract.SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (r *SessionStore) Get(ctx context.Context, key string) (*dialog.Session, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session get: %w", err)
	}
	var s dialog.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("session decode: %w", err)
	}
	return &s, true, nil
}

func (r *SessionStore) Put(ctx context.Context, key string, patch dialog.Patch) (*dialog.Session, error) {
	s, found, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		s = dialog.NewSession(key)
	}
	patch.ApplyTo(s)

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session encode: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session put: %w", err)
	}
	return s, nil
}
