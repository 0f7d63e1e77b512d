// Package repository stores live game sessions keyed by game ID.
package repository

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/game"
)

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound = errors.New("repository: session not found")

// SessionRepository is the session store the manager works against.
type SessionRepository interface {
	Save(session *game.Session) error
	Get(id uuid.UUID) (*game.Session, error)
	List() []*game.Session
	Delete(id uuid.UUID)
}

// InMemorySessionRepository is an in-memory implementation of
// SessionRepository. Sessions live only as long as the process; there is
// no persistence behind it.
type InMemorySessionRepository struct {
	sessions map[uuid.UUID]*game.Session
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewInMemoryRepository creates a new in-memory session repository.
func NewInMemoryRepository(logger *zap.Logger) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[uuid.UUID]*game.Session),
		logger:   logger,
	}
}

// Save stores a session under its ID.
func (r *InMemorySessionRepository) Save(session *game.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by ID.
func (r *InMemorySessionRepository) Get(id uuid.UUID) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all stored sessions.
func (r *InMemorySessionRepository) List() []*game.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*game.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (r *InMemorySessionRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}
