package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/events"
	"github.com/mateline/rules-server/pkg/manager"
	"github.com/mateline/rules-server/pkg/messages"
	"github.com/mateline/rules-server/pkg/repository"
)

// outbound mirrors OutboundMessage with a raw payload so tests can decode
// the payload per event type.
type outbound struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func newTestHub() (*Hub, *Connection) {
	logger := zap.NewNop()
	publisher := events.NewPublisher()
	repo := repository.NewInMemoryRepository(logger)
	gm := manager.NewManager(repo, logger, publisher)

	h := NewHub(gm, publisher, logger)
	conn := NewConnection(nil, h, publisher, logger)
	h.registerConnection(conn)
	return h, conn
}

// nextMessage reads one outbound frame from the connection's send buffer.
func nextMessage(t *testing.T, conn *Connection) outbound {
	t.Helper()

	select {
	case raw := <-conn.send:
		var msg outbound
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no outbound message")
		return outbound{}
	}
}

func inboundMsg(t *testing.T, conn *Connection, event string, payload any) InboundHubMessage {
	t.Helper()

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = data
	}
	return InboundHubMessage{
		Conn:    conn,
		Message: messages.InboundMessage{Event: event, Payload: raw},
	}
}

func createWsGame(t *testing.T, h *Hub, conn *Connection) string {
	t.Helper()

	h.handleInbound(inboundMsg(t, conn, "CREATE_GAME", nil))

	msg := nextMessage(t, conn)
	require.Equal(t, "GAME_CREATED", msg.Event)

	var state messages.GameStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	require.NotEmpty(t, state.GameID)
	return state.GameID
}

func TestHubRegisterSendsConnected(t *testing.T) {
	_, conn := newTestHub()

	msg := nextMessage(t, conn)
	assert.Equal(t, "CONNECTED", msg.Event)

	var payload messages.ConnectedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, conn.ID.String(), payload.ConnectionID)
}

func TestHubCreateGame(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED

	gameID := createWsGame(t, h, conn)

	h.mu.RLock()
	owner := h.gameOwners[gameID]
	h.mu.RUnlock()
	assert.Same(t, conn, owner)
}

func TestHubMakeMovePushesGameState(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED
	gameID := createWsGame(t, h, conn)

	h.handleInbound(inboundMsg(t, conn, "MAKE_MOVE", messages.MakeMovePayload{
		GameID: gameID,
		Color:  "w",
		From:   &[2]int{1, 4},
		To:     &[2]int{3, 4},
	}))

	msg := nextMessage(t, conn)
	require.Equal(t, "GAME_STATE", msg.Event)

	var state messages.GameStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.Equal(t, "b", state.CurrentTurn)
	assert.Equal(t, "Pawn", state.Board[3][4])
}

func TestHubMakeMoveRejection(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED
	gameID := createWsGame(t, h, conn)

	h.handleInbound(inboundMsg(t, conn, "MAKE_MOVE", messages.MakeMovePayload{
		GameID: gameID,
		Color:  "b",
		From:   &[2]int{6, 4},
		To:     &[2]int{4, 4},
	}))

	msg := nextMessage(t, conn)
	require.Equal(t, "ERROR", msg.Event)

	var payload messages.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "wrong_turn", payload.Code)
}

func TestHubEndGame(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED
	gameID := createWsGame(t, h, conn)

	h.handleInbound(inboundMsg(t, conn, "END_GAME", messages.GameRefPayload{GameID: gameID}))

	msg := nextMessage(t, conn)
	require.Equal(t, "GAME_STATE", msg.Event)

	var state messages.GameStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.True(t, state.GameOver)
}

func TestHubGetBoard(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED
	gameID := createWsGame(t, h, conn)

	h.handleInbound(inboundMsg(t, conn, "GET_BOARD", messages.GameRefPayload{GameID: gameID}))

	msg := nextMessage(t, conn)
	require.Equal(t, "BOARD", msg.Event)

	var payload messages.BoardPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "King", payload.Board[0][4])
}

func TestHubUnknownEvent(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED

	h.handleInbound(inboundMsg(t, conn, "CASTLE", nil))

	msg := nextMessage(t, conn)
	assert.Equal(t, "ERROR", msg.Event)
}

func TestHubUnknownGame(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED

	h.handleInbound(inboundMsg(t, conn, "GET_BOARD", messages.GameRefPayload{
		GameID: "1b671a64-40d5-491e-99b0-da01ff1f3341",
	}))

	msg := nextMessage(t, conn)
	require.Equal(t, "ERROR", msg.Event)

	var payload messages.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "game_not_found", payload.Code)
}

func TestHubUnregisterDropsOwnership(t *testing.T) {
	h, conn := newTestHub()
	nextMessage(t, conn) // CONNECTED
	gameID := createWsGame(t, h, conn)

	h.unregisterConnection(conn)

	h.mu.RLock()
	_, owned := h.gameOwners[gameID]
	total := len(h.connections)
	h.mu.RUnlock()

	assert.False(t, owned)
	assert.Zero(t, total)
}
