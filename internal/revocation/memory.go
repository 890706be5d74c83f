package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revoked tokens in process memory. State is lost on
// restart, which fails open for at most one token lifetime; growth is
// bounded by expiry sweeps piggybacked on writes.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time // token -> expiry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to track.
		return nil
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for t, exp := range s.tokens {
		if now.After(exp) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = now.Add(ttl)

	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	return time.Now().Before(exp), nil
}
