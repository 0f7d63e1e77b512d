package manager

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/events"
	"github.com/mateline/rules-server/pkg/repository"
)

func newTestManager() *Manager {
	logger := zap.NewNop()
	return NewManager(repository.NewInMemoryRepository(logger), logger, events.NewPublisher())
}

func TestCreateAndGetSession(t *testing.T) {
	m := newTestManager()

	session := m.Create()
	require.NotNil(t, session)
	defer m.Remove(session.ID)

	found, ok := m.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, found)
}

func TestGetUnknownSession(t *testing.T) {
	m := newTestManager()

	_, ok := m.Get(uuid.New())
	assert.False(t, ok)
}

func TestRemoveSession(t *testing.T) {
	m := newTestManager()

	session := m.Create()
	m.Remove(session.ID)

	_, ok := m.Get(session.ID)
	assert.False(t, ok)

	// Removing twice is harmless.
	m.Remove(session.ID)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestManager()

	a := m.Create()
	b := m.Create()
	defer m.Remove(a.ID)
	defer m.Remove(b.ID)

	require.NotEqual(t, a.ID, b.ID)

	a.End()
	assert.True(t, a.Snapshot().GameOver)
	assert.False(t, b.Snapshot().GameOver)
}
