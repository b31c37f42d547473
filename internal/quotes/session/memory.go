package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
)

// MemoryStore is the single-process session store used in development and
// as the fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// Get returns the session or apperr.NotFound when absent/expired.
func (s *MemoryStore) Get(_ context.Context, token uuid.UUID) (domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return domain.Session{}, apperr.NotFound(notFoundMessage)
	}
	return entry.session, nil
}

// Save upserts the session and refreshes its TTL. Expired siblings are
// swept opportunistically to keep the map from growing unbounded.
func (s *MemoryStore) Save(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}

	s.entries[sess.Token] = memoryEntry{
		session:   sess,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(_ context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
