// Package messages defines the JSON payloads exchanged with clients,
// over both the REST endpoints and the websocket transport.
package messages

import "encoding/json"

// InboundMessage is the generic wrapper for messages coming from a
// websocket client. The "event" field tells us the action; "payload" is
// the data we parse further.
type InboundMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// GameRefPayload addresses an existing game.
type GameRefPayload struct {
	GameID string `json:"game_id" validate:"required,uuid"`
}

// MakeMovePayload asks for one move in an existing game. Coordinates are
// zero-based [row, col] pairs; values are range-checked by the rules
// engine, which treats anything off the board as an illegal move.
type MakeMovePayload struct {
	GameID string  `json:"game_id" validate:"required,uuid"`
	Color  string  `json:"color"   validate:"required,oneof=w b"`
	From   *[2]int `json:"from"    validate:"required"`
	To     *[2]int `json:"to"      validate:"required"`
}

// MoveRequest is the REST body for POST /games/{id}/moves.
type MoveRequest struct {
	Color string  `json:"color" validate:"required,oneof=w b"`
	From  *[2]int `json:"from"  validate:"required"`
	To    *[2]int `json:"to"    validate:"required"`
}
