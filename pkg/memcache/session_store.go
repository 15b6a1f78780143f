package mem

import (
	"context"
	"sync"
	"time"

	sm "reout/internal/models/session_models"
	"reout/pkg/utils"
)

// SessionStore keeps planning sessions between requests.
// Get returns utils.ErrSessionNotFound for missing or expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*sm.PlanningSession, error)
	Save(ctx context.Context, session *sm.PlanningSession) error
	Delete(ctx context.Context, id string) error
}

type entry struct {
	session   *sm.PlanningSession
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*sm.PlanningSession, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if s.expired(e) {
		s.mu.Lock()
		delete(s.data, id) // cleanup expired
		s.mu.Unlock()
		return nil, utils.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

func (s *MemorySessionStore) Save(ctx context.Context, session *sm.PlanningSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{session: session.Clone()}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.data[session.ID] = e
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if s.expired(e) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *MemorySessionStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}
