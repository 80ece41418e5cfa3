package memory

import (
	"context"
	"time"

	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/pkg/dialog"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps conversation documents in process memory. Meant for
// development and tests; a crash loses every active conversation.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) contract.SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &SessionStore{cache: c}
}

func (r *SessionStore) Get(_ context.Context, key string) (*dialog.Session, bool, error) {
	if x, found := r.cache.Get(key); found {
		s := x.(dialog.Session)
		return &s, true, nil
	}
	return nil, false, nil
}

// Put merges the patch into the stored document, creating it first when the
// key is new. The cache holds copies, so callers never share a pointer with
// the store.
func (r *SessionStore) Put(_ context.Context, key string, patch dialog.Patch) (*dialog.Session, error) {
	var s dialog.Session
	if x, found := r.cache.Get(key); found {
		s = x.(dialog.Session)
	} else {
		s = *dialog.NewSession(key)
	}
	patch.ApplyTo(&s)
	r.cache.Set(key, s, cache.DefaultExpiration)
	out := s
	return &out, nil
}
