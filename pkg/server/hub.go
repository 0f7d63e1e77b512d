// Package server is the websocket transport: a hub routing client
// messages to game sessions, and the per-client connection pumps.
package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/chess"
	"github.com/mateline/rules-server/pkg/events"
	"github.com/mateline/rules-server/pkg/game"
	"github.com/mateline/rules-server/pkg/manager"
	"github.com/mateline/rules-server/pkg/messages"
)

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // parsed envelope
}

// Hub keeps track of all active connections and routes inbound client
// messages to the right game session. It also pushes session events
// (state changes, clock ticks) back to the connection owning a game.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool
	gameOwners  map[string]*Connection // game ID -> owning connection

	register   chan *Connection
	unregister chan *Connection
	inbound    chan InboundHubMessage

	done chan struct{}

	gameManager *manager.Manager
	publisher   *events.Publisher
	logger      *zap.Logger
	validate    *validator.Validate
}

// NewHub creates a new hub
func NewHub(gm *manager.Manager, publisher *events.Publisher, logger *zap.Logger) *Hub {
	h := &Hub{
		connections: make(map[*Connection]bool),
		gameOwners:  make(map[string]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		done:        make(chan struct{}),
		gameManager: gm,
		publisher:   publisher,
		logger:      logger,
		validate:    validator.New(),
	}

	// Session events flow to the owning connection regardless of which
	// transport triggered them, so a websocket client watching a game
	// sees moves made over REST too.
	publisher.Subscribe(events.EventMovePlayed, func(e events.Event) {
		if snap, ok := e.Payload.(game.Snapshot); ok {
			h.pushToOwner(e.GameID, messages.OutboundMessage{
				Event:   "GAME_STATE",
				Payload: messages.GameState(snap),
			})
		}
	})
	publisher.Subscribe(events.EventClockUpdated, func(e events.Event) {
		if tick, ok := e.Payload.(game.Tick); ok {
			h.pushToOwner(e.GameID, messages.OutboundMessage{
				Event: "CLOCK_UPDATE",
				Payload: messages.ClockUpdatePayload{
					GameID:      e.GameID,
					WhiteTimeMs: tick.WhiteMs,
					BlackTimeMs: tick.BlackMs,
					ActiveColor: string(tick.ActiveColor),
				},
			})
		}
	})

	return h
}

// Run is the main execution of the hub
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-h.done:
			return
		}
	}
}

// Shutdown stops the hub loop and closes every connection.
func (h *Hub) Shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		close(conn.send)
		delete(h.connections, conn)
	}
	h.gameOwners = make(map[string]*Connection)
}

// Register hands a new connection to the hub loop.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub loop.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	h.connections[conn] = true
	total := len(h.connections)
	h.mu.Unlock()

	h.logger.Info("connection registered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", total))

	conn.SendJSON(messages.OutboundMessage{
		Event:   "CONNECTED",
		Payload: messages.ConnectedPayload{ConnectionID: conn.ID.String()},
	})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[conn]; !ok {
		return
	}
	delete(h.connections, conn)
	for gameID, owner := range h.gameOwners {
		if owner == conn {
			delete(h.gameOwners, gameID)
		}
	}
	close(conn.send)

	h.logger.Info("connection unregistered",
		zap.String("connection_id", conn.ID.String()),
		zap.Int("total", len(h.connections)))
}

// handleInbound decodes and routes one client message.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	switch msg.Message.Event {
	case "CREATE_GAME":
		session := h.gameManager.Create()
		session.ConnectionID = msg.Conn.ID

		h.mu.Lock()
		h.gameOwners[session.ID.String()] = msg.Conn
		h.mu.Unlock()

		msg.Conn.SendJSON(messages.OutboundMessage{
			Event:   "GAME_CREATED",
			Payload: messages.GameState(session.Snapshot()),
		})

	case "START_GAME":
		var payload messages.GameRefPayload
		session, ok := h.decodeSessionPayload(msg, &payload, &payload.GameID)
		if !ok {
			return
		}

		msg.Conn.SendJSON(messages.OutboundMessage{
			Event:   "GAME_STATE",
			Payload: messages.GameState(session.Start()),
		})

	case "MAKE_MOVE":
		var payload messages.MakeMovePayload
		session, ok := h.decodeSessionPayload(msg, &payload, &payload.GameID)
		if !ok {
			return
		}

		player, err := chess.ParseColor(payload.Color)
		if err != nil {
			h.sendError(msg.Conn, "invalid_request", err.Error())
			return
		}

		from := chess.Position{Row: payload.From[0], Col: payload.From[1]}
		to := chess.Position{Row: payload.To[0], Col: payload.To[1]}

		// The success reply arrives through the MOVE_PLAYED push above;
		// only rejections are answered inline.
		if _, err := session.Move(player, from, to); err != nil {
			h.sendError(msg.Conn, messages.ErrorCode(err), err.Error())
		}

	case "END_GAME":
		var payload messages.GameRefPayload
		session, ok := h.decodeSessionPayload(msg, &payload, &payload.GameID)
		if !ok {
			return
		}

		msg.Conn.SendJSON(messages.OutboundMessage{
			Event:   "GAME_STATE",
			Payload: messages.GameState(session.End()),
		})

	case "GET_BOARD":
		var payload messages.GameRefPayload
		session, ok := h.decodeSessionPayload(msg, &payload, &payload.GameID)
		if !ok {
			return
		}

		snap := session.Snapshot()
		msg.Conn.SendJSON(messages.OutboundMessage{
			Event: "BOARD",
			Payload: messages.BoardPayload{
				GameID: snap.GameID,
				Board:  snap.Board,
			},
		})

	default:
		h.sendError(msg.Conn, "unknown_event", fmt.Sprintf("unknown event %q", msg.Message.Event))
	}
}

// decodeSessionPayload unmarshals and validates a payload carrying a game
// ID, then resolves the session. On any failure the client gets an ERROR
// message and ok is false.
func (h *Hub) decodeSessionPayload(msg InboundHubMessage, payload any, gameID *string) (*game.Session, bool) {
	if err := json.Unmarshal(msg.Message.Payload, payload); err != nil {
		h.sendError(msg.Conn, "invalid_request", fmt.Sprintf("invalid %s payload", msg.Message.Event))
		return nil, false
	}
	if err := h.validate.Struct(payload); err != nil {
		h.sendError(msg.Conn, "invalid_request", err.Error())
		return nil, false
	}

	id, err := uuid.Parse(*gameID)
	if err != nil {
		h.sendError(msg.Conn, "invalid_request", err.Error())
		return nil, false
	}

	session, ok := h.gameManager.Get(id)
	if !ok {
		h.sendError(msg.Conn, "game_not_found", fmt.Sprintf("no game with id %s", *gameID))
		return nil, false
	}
	return session, true
}

// pushToOwner delivers a message to the connection owning a game, if any.
func (h *Hub) pushToOwner(gameID string, msg messages.OutboundMessage) {
	h.mu.RLock()
	conn, ok := h.gameOwners[gameID]
	h.mu.RUnlock()

	if ok {
		conn.SendJSON(msg)
	}
}

func (h *Hub) sendError(conn *Connection, code, msg string) {
	conn.SendJSON(messages.OutboundMessage{
		Event:   "ERROR",
		Payload: messages.ErrorPayload{Code: code, Message: msg},
	})
}
