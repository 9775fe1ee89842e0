package revocation

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(s.now()) {
		return nil
	}

	key := Key(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, exists := s.entries[key]; exists && current.After(expiresAt) {
		return nil
	}
	s.entries[key] = expiresAt
	return nil
}

// IsRevoked treats an expired entry as absent; Sweep reclaims it later.
func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	key := Key(token)

	s.mu.RLock()
	expiresAt, exists := s.entries[key]
	s.mu.RUnlock()

	return exists && expiresAt.After(s.now()), nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, expiresAt := range s.entries {
		if !expiresAt.After(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
