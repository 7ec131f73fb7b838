package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// SessionStorage provides in-memory storage for game sessions by ID.
// Callers always receive copies; mutation goes through Update.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[string]*entities.Session),
	}
}

// Create saves a new session.
func (s *SessionStorage) Create(session *entities.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return ErrSessionExists
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get retrieves a copy of the session with the given ID.
func (s *SessionStorage) Get(id string) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Update applies fn to the stored session atomically. The change is
// discarded when fn fails. The updated copy is returned.
func (s *SessionStorage) Update(id string, fn func(*entities.Session) error) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	working := session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	s.sessions[id] = working
	return working.Clone(), nil
}

// Delete removes the session with the given ID.
func (s *SessionStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// DeleteIdle removes sessions not updated since before and returns how many were removed.
func (s *SessionStorage) DeleteIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(before) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
