package messages

import (
	"errors"

	"github.com/mateline/rules-server/pkg/chess"
	"github.com/mateline/rules-server/pkg/game"
)

// OutboundMessage is how we wrap responses before sending
// them to a websocket client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// ConnectedPayload acknowledges a new websocket connection.
type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

// GameStatePayload is the full state of a game after an operation.
type GameStatePayload struct {
	GameID      string       `json:"game_id"`
	Board       [8][8]string `json:"board"`
	CurrentTurn string       `json:"current_turn"`
	GameOver    bool         `json:"game_over"`
	WhiteTimeMs int64        `json:"white_time_ms"`
	BlackTimeMs int64        `json:"black_time_ms"`
}

// GameState converts a session snapshot into its wire shape.
func GameState(snap game.Snapshot) GameStatePayload {
	return GameStatePayload{
		GameID:      snap.GameID,
		Board:       snap.Board,
		CurrentTurn: string(snap.Turn),
		GameOver:    snap.GameOver,
		WhiteTimeMs: snap.WhiteMs,
		BlackTimeMs: snap.BlackMs,
	}
}

// BoardPayload is the serialization view of a board: piece kind names
// per square, empty string for empty squares. Color is not included.
type BoardPayload struct {
	GameID string       `json:"game_id"`
	Board  [8][8]string `json:"board"`
}

// ClockUpdatePayload carries the periodic thinking-time snapshot.
type ClockUpdatePayload struct {
	GameID      string `json:"game_id"`
	WhiteTimeMs int64  `json:"white_time_ms"`
	BlackTimeMs int64  `json:"black_time_ms"`
	ActiveColor string `json:"active_color"`
}

// ErrorPayload reports a rejected request.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorCode maps a rules error onto a stable wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, chess.ErrGameOver):
		return "game_over"
	case errors.Is(err, chess.ErrWrongTurn):
		return "wrong_turn"
	case errors.Is(err, chess.ErrIllegalMove):
		return "illegal_move"
	}
	return "internal_error"
}
