// Package manager owns the set of live game sessions. Transports resolve
// games through it by ID; there is no process-global current game.
package manager

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/events"
	"github.com/mateline/rules-server/pkg/game"
	"github.com/mateline/rules-server/pkg/repository"
)

// Manager creates, resolves and removes game sessions.
type Manager struct {
	repo      repository.SessionRepository
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewManager creates a manager on top of the given session store.
func NewManager(
	repo repository.SessionRepository,
	logger *zap.Logger,
	publisher *events.Publisher,
) *Manager {
	m := &Manager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}

	// Games owned by a websocket connection die with it.
	publisher.Subscribe(events.EventConnectionClosed, func(event events.Event) {
		payload, ok := event.Payload.(map[string]string)
		if !ok {
			m.logger.Error("invalid connection closed payload type")
			return
		}

		connID, err := uuid.Parse(payload["connection_id"])
		if err != nil {
			m.logger.Error("invalid connection id in event", zap.Error(err))
			return
		}

		m.removeSessionsByConnection(connID)
	})

	return m
}

// Create builds a new session on the starting position and registers it.
func (m *Manager) Create() *game.Session {
	session := game.NewSession(m.logger, m.publisher)

	if err := m.repo.Save(session); err != nil {
		// The in-memory store never fails; log and carry on if another
		// implementation does.
		m.logger.Error("failed to store session", zap.Error(err))
	}

	m.logger.Info("created game session", zap.String("game_id", session.ID.String()))

	m.publisher.Publish(events.Event{
		Type:    events.EventGameCreated,
		GameID:  session.ID.String(),
		Payload: session.Snapshot(),
	})

	return session
}

// Get returns a session by ID.
func (m *Manager) Get(id uuid.UUID) (*game.Session, bool) {
	session, err := m.repo.Get(id)
	if err != nil {
		return nil, false
	}
	return session, true
}

// Remove closes a session and drops it from the store.
func (m *Manager) Remove(id uuid.UUID) {
	session, err := m.repo.Get(id)
	if err != nil {
		return
	}

	session.Close()
	m.repo.Delete(id)
	m.logger.Info("removed game session", zap.String("game_id", id.String()))
}

// removeSessionsByConnection closes every session owned by a websocket
// connection that went away.
func (m *Manager) removeSessionsByConnection(connID uuid.UUID) {
	for _, session := range m.repo.List() {
		if session.ConnectionID == connID {
			m.Remove(session.ID)
		}
	}
}
