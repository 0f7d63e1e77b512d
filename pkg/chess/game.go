package chess

import "errors"

// Rule violations reported by Game.Move. All of them are recoverable and
// leave the game untouched; nothing in this package panics on bad input.
var (
	// ErrGameOver rejects moves after End until Start runs again.
	ErrGameOver = errors.New("chess: game is over")
	// ErrWrongTurn rejects a move claimed by the color not on turn.
	ErrWrongTurn = errors.New("chess: not this player's turn")
	// ErrIllegalMove rejects everything the board refuses: out-of-range
	// coordinates, empty or opponent-owned start squares, geometry and
	// path violations, and same-color captures.
	ErrIllegalMove = errors.New("chess: illegal move")
)

// Game owns one board plus the turn and game-over bookkeeping around it.
// It is not safe for concurrent use; callers serialize access (the
// session layer holds one lock per game).
type Game struct {
	board       *Board
	currentTurn Color
	gameOver    bool
}

// NewGame returns a game on the standard starting position with White to
// move.
func NewGame() *Game {
	return &Game{
		board:       NewBoard(),
		currentTurn: White,
	}
}

// Start resets the board to the starting position, gives White the move
// and clears the game-over flag. Valid from any state.
func (g *Game) Start() {
	g.board.Setup()
	g.currentTurn = White
	g.gameOver = false
}

// Move performs one move for the claimed player. The player must hold
// the turn and the from square must hold one of their pieces; the move
// itself is judged by the board. On success the move is applied and the
// turn passes to the opponent, on any error the game is unchanged.
func (g *Game) Move(player Color, from, to Position) error {
	if g.gameOver {
		return ErrGameOver
	}
	if player != g.currentTurn {
		return ErrWrongTurn
	}

	// Holding the turn is not enough: the moved piece must be the
	// player's own.
	if from.InBounds() {
		if piece, ok := g.board.PieceAt(from); ok && piece.Color != player {
			return ErrIllegalMove
		}
	}

	if !g.board.MovePiece(from, to) {
		return ErrIllegalMove
	}

	g.currentTurn = g.currentTurn.Opp()
	return nil
}

// End finishes the game. Terminal until Start is called again; every
// later move is rejected with ErrGameOver.
func (g *Game) End() {
	g.gameOver = true
}

// Turn returns the color to move.
func (g *Game) Turn() Color { return g.currentTurn }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.gameOver }

// Board exposes the game's board for reads. Mutations go through Move.
func (g *Game) Board() *Board { return g.board }
