package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/chess"
	"github.com/mateline/rules-server/pkg/game"
	"github.com/mateline/rules-server/pkg/messages"
)

var validate = validator.New()

// handleCreateGame handles POST /games: a new session on the standard
// starting position, White to move.
func (app *application) handleCreateGame(w http.ResponseWriter, _ *http.Request) {
	session := app.Manager.Create()
	app.writeJSON(w, http.StatusCreated, messages.GameState(session.Snapshot()))
}

// handleStartGame handles POST /games/{id}/start: reset to the starting
// position. Valid at any point, including after the game ended.
func (app *application) handleStartGame(w http.ResponseWriter, r *http.Request) {
	session, ok := app.lookupSession(w, r)
	if !ok {
		return
	}

	app.writeJSON(w, http.StatusOK, messages.GameState(session.Start()))
}

// handleMove handles POST /games/{id}/moves. The body carries the
// claimed player color and [row, col] coordinate pairs; anything the
// rules reject comes back as 409 with a stable error code.
func (app *application) handleMove(w http.ResponseWriter, r *http.Request) {
	session, ok := app.lookupSession(w, r)
	if !ok {
		return
	}

	var req messages.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	player, err := chess.ParseColor(req.Color)
	if err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	from := chess.Position{Row: req.From[0], Col: req.From[1]}
	to := chess.Position{Row: req.To[0], Col: req.To[1]}

	snap, err := session.Move(player, from, to)
	if err != nil {
		app.writeError(w, http.StatusConflict, messages.ErrorCode(err), err.Error())
		return
	}

	app.writeJSON(w, http.StatusOK, messages.GameState(snap))
}

// handleEndGame handles POST /games/{id}/end. Unconditional; the game
// stays rejecting moves until started again.
func (app *application) handleEndGame(w http.ResponseWriter, r *http.Request) {
	session, ok := app.lookupSession(w, r)
	if !ok {
		return
	}

	app.writeJSON(w, http.StatusOK, messages.GameState(session.End()))
}

// handleGetBoard handles GET /games/{id}/board: the 8x8 grid of piece
// kind names.
func (app *application) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	session, ok := app.lookupSession(w, r)
	if !ok {
		return
	}

	snap := session.Snapshot()
	app.writeJSON(w, http.StatusOK, messages.BoardPayload{
		GameID: snap.GameID,
		Board:  snap.Board,
	})
}

// lookupSession resolves the {id} path segment into a live session,
// answering the request itself when that fails.
func (app *application) lookupSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid_request", "game id must be a UUID")
		return nil, false
	}

	session, ok := app.Manager.Get(id)
	if !ok {
		app.writeError(w, http.StatusNotFound, "game_not_found", "no game with this id")
		return nil, false
	}
	return session, true
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("failed to encode response", zap.Error(err))
	}
}

func (app *application) writeError(w http.ResponseWriter, status int, code, msg string) {
	app.writeJSON(w, status, messages.ErrorPayload{Code: code, Message: msg})
}
