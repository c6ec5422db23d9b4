package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/orris-inc/docforge/internal/domain/document"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionStore keeps export sessions in process memory. It is meant
// for single-instance deployments and the CLI. Expired entries are dropped
// lazily on access and by PurgeExpired.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save stores an encoded copy, so later changes to session are not visible
// until it is saved again.
func (s *MemorySessionStore) Save(_ context.Context, session *document.ExportSession) error {
	if session == nil || session.ID() == "" {
		return errors.New("session id cannot be empty")
	}

	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID()] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// PurgeExpired drops every expired session and returns how many were
// dropped.
func (s *MemorySessionStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			purged++
		}
	}
	return purged, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*document.ExportSession, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return decodeSession(e.data)
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
