package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/votingapp/api/internal/core/domain"
	"github.com/votingapp/api/internal/core/ports"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
}

// NewMemoryStore builds an in-process session store. Expired sessions are
// pruned lazily on Get; there is no background sweeper.
func NewMemoryStore() ports.SessionStore {
	return &memoryStore{sessions: make(map[uuid.UUID]domain.Session)}
}

func (s *memoryStore) Create(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *memoryStore) Get(id uuid.UUID) (domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	if session.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session, nil
}

func (s *memoryStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
