// Package game holds live game sessions: one rules engine instance plus
// the locking, identity, clock and event plumbing a transport needs.
package game

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/chess"
	"github.com/mateline/rules-server/pkg/events"
)

// Session wraps one chess.Game behind a mutex so that at most one
// mutation is in flight per game, whatever transport the requests come
// from.
type Session struct {
	ID           uuid.UUID
	ConnectionID uuid.UUID // owning websocket connection, zero for REST-only games

	game  *chess.Game
	clock *Clock

	done chan struct{}

	mu sync.Mutex

	publisher *events.Publisher
	logger    *zap.Logger
}

// Snapshot is a read-consistent view of a session for transport
// responses.
type Snapshot struct {
	GameID   string
	Board    [8][8]string
	Turn     chess.Color
	GameOver bool
	WhiteMs  int64
	BlackMs  int64
}

// NewSession creates a session on the standard starting position and
// starts its clock.
func NewSession(logger *zap.Logger, publisher *events.Publisher) *Session {
	s := &Session{
		ID:        uuid.New(),
		game:      chess.NewGame(),
		clock:     NewClock(),
		done:      make(chan struct{}),
		publisher: publisher,
		logger:    logger,
	}

	s.clock.Start()
	go s.forwardClockTicks()

	return s
}

// Start resets the game to the starting position with White to move.
// Valid at any point in a session's life.
func (s *Session) Start() Snapshot {
	s.mu.Lock()
	s.game.Start()
	s.clock.Reset()
	s.clock.Start()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("game started", zap.String("game_id", s.ID.String()))
	s.publisher.Publish(events.Event{
		Type:    events.EventGameStarted,
		GameID:  s.ID.String(),
		Payload: snap,
	})

	return snap
}

// Move performs one move for the claimed player. Rule violations come
// back as the chess package's sentinel errors with the session state
// unchanged.
func (s *Session) Move(player chess.Color, from, to chess.Position) (Snapshot, error) {
	s.mu.Lock()
	err := s.game.Move(player, from, to)
	if err == nil {
		s.clock.Switch()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("move rejected",
			zap.String("game_id", s.ID.String()),
			zap.String("player", string(player)),
			zap.Error(err))
		return snap, err
	}

	s.logger.Info("move played",
		zap.String("game_id", s.ID.String()),
		zap.String("player", string(player)),
		zap.Int("from_row", from.Row), zap.Int("from_col", from.Col),
		zap.Int("to_row", to.Row), zap.Int("to_col", to.Col))

	s.publisher.Publish(events.Event{
		Type:    events.EventMovePlayed,
		GameID:  s.ID.String(),
		Payload: snap,
	})

	return snap, nil
}

// End finishes the game; moves are rejected until Start runs again.
func (s *Session) End() Snapshot {
	s.mu.Lock()
	s.game.End()
	s.clock.Stop()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("game ended", zap.String("game_id", s.ID.String()))
	s.publisher.Publish(events.Event{
		Type:    events.EventGameEnded,
		GameID:  s.ID.String(),
		Payload: snap,
	})

	return snap
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	white, black := s.clock.Elapsed()
	return Snapshot{
		GameID:   s.ID.String(),
		Board:    s.game.Board().View(),
		Turn:     s.game.Turn(),
		GameOver: s.game.Over(),
		WhiteMs:  white,
		BlackMs:  black,
	}
}

// Close stops the clock and the tick forwarding goroutine. A closed
// session is removed from its repository and never reused.
func (s *Session) Close() {
	s.clock.Stop()
	close(s.done)
}

// forwardClockTicks republishes clock snapshots as events so the
// websocket hub can push them to the owning connection.
func (s *Session) forwardClockTicks() {
	for {
		select {
		case <-s.done:
			return
		case tick := <-s.clock.Ticks():
			s.publisher.Publish(events.Event{
				Type:    events.EventClockUpdated,
				GameID:  s.ID.String(),
				Payload: tick,
			})
		}
	}
}
