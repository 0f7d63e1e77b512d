package chess

// Kind enumerates the piece kinds.
type Kind int

// All piece kinds, White's back rank order aside.
const (
	King Kind = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// String returns the English piece name, as used in board views.
func (k Kind) String() string {
	switch k {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	}
	return "Unknown"
}

// Piece is a single chess piece. Pieces are immutable; the board moves
// them between squares but never changes their kind or color.
type Piece struct {
	Kind  Kind
	Color Color
}

// CanMove reports whether moving this piece from one square to another is
// legal under the piece's own movement rules: geometry, path clearance
// for sliding pieces, and the destination being empty or an enemy piece.
// It assumes the piece occupies the from square and both squares are on
// the board. Turn order is outside its scope.
func (p Piece) CanMove(b *Board, from, to Position) bool {
	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	switch p.Kind {
	case King:
		// A zero-delta "move" passes the distance check but fails
		// captureOK, since the destination holds the king itself.
		return abs(dRow) <= 1 && abs(dCol) <= 1 && p.captureOK(b, to)
	case Queen:
		aligned := dRow == 0 || dCol == 0 || abs(dRow) == abs(dCol)
		return aligned && b.pathClear(from, to) && p.captureOK(b, to)
	case Rook:
		aligned := dRow == 0 || dCol == 0
		return aligned && b.pathClear(from, to) && p.captureOK(b, to)
	case Bishop:
		aligned := dRow != 0 && abs(dRow) == abs(dCol)
		return aligned && b.pathClear(from, to) && p.captureOK(b, to)
	case Knight:
		jump := (abs(dRow) == 2 && abs(dCol) == 1) || (abs(dRow) == 1 && abs(dCol) == 2)
		return jump && p.captureOK(b, to)
	case Pawn:
		return p.canMovePawn(b, from, to)
	}
	return false
}

// canMovePawn covers the three pawn moves: single advance onto an empty
// square, double advance from the home row across two empty squares, and
// a one-step diagonal capture. Diagonal moves onto empty squares are
// illegal; there is no en passant.
func (p Piece) canMovePawn(b *Board, from, to Position) bool {
	dir, home := 1, 1
	if p.Color == Black {
		dir, home = -1, 6
	}

	if from.Col == to.Col {
		if to.Row == from.Row+dir {
			return !b.IsOccupied(to)
		}
		if to.Row == from.Row+2*dir && from.Row == home {
			return !b.IsOccupied(Position{Row: from.Row + dir, Col: from.Col}) &&
				!b.IsOccupied(to)
		}
		return false
	}

	if abs(to.Col-from.Col) == 1 && to.Row == from.Row+dir {
		target, ok := b.PieceAt(to)
		return ok && target.Color != p.Color
	}
	return false
}

// captureOK reports whether the destination is empty or holds an enemy
// piece.
func (p Piece) captureOK(b *Board, to Position) bool {
	target, ok := b.PieceAt(to)
	return !ok || target.Color != p.Color
}

// letter returns the single-letter FEN-style symbol, upper case for White.
func (p Piece) letter() byte {
	var c byte
	switch p.Kind {
	case King:
		c = 'k'
	case Queen:
		c = 'q'
	case Rook:
		c = 'r'
	case Bishop:
		c = 'b'
	case Knight:
		c = 'n'
	case Pawn:
		c = 'p'
	}
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
