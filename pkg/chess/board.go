package chess

import (
	"fmt"
	"strings"
)

// Board is an 8x8 grid of squares, each holding at most one piece. The
// board exclusively owns the pieces on it; MovePiece is the only way a
// game mutates the grid.
type Board struct {
	squares [8][8]*Piece
}

// NewBoard returns a board with the standard starting layout.
func NewBoard() *Board {
	b := &Board{}
	b.Setup()
	return b
}

// backRank is White's back rank order; Black mirrors it on row 7.
var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Setup installs the standard starting position. It overwrites all 64
// squares, so it also serves as a full reset of a board mid-game.
func (b *Board) Setup() {
	b.squares = [8][8]*Piece{}
	for col, kind := range backRank {
		b.squares[0][col] = &Piece{Kind: kind, Color: White}
		b.squares[7][col] = &Piece{Kind: kind, Color: Black}
	}
	for col := 0; col < 8; col++ {
		b.squares[1][col] = &Piece{Kind: Pawn, Color: White}
		b.squares[6][col] = &Piece{Kind: Pawn, Color: Black}
	}
}

// IsOccupied reports whether the square holds a piece. The position must
// be on the board; IsValidMove range-checks before anything reaches the
// grid.
func (b *Board) IsOccupied(pos Position) bool {
	return b.squares[pos.Row][pos.Col] != nil
}

// PieceAt returns the piece occupying the square, if any.
func (b *Board) PieceAt(pos Position) (Piece, bool) {
	p := b.squares[pos.Row][pos.Col]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// IsValidMove reports whether moving the occupant of from to to is legal.
// It fails closed: coordinates off the board, an empty from square, a
// violation of the piece's own rules, or a same-color destination all
// yield false. Same-color capture is rejected by every piece rule and
// rejected again here.
func (b *Board) IsValidMove(from, to Position) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}

	piece, ok := b.PieceAt(from)
	if !ok {
		return false
	}

	if !piece.CanMove(b, from, to) {
		return false
	}

	if target, ok := b.PieceAt(to); ok && target.Color == piece.Color {
		return false
	}

	return true
}

// MovePiece applies the move if it is legal, relocating the occupant of
// from onto to and discarding any captured piece. It reports whether the
// board changed; on an illegal move nothing is mutated.
func (b *Board) MovePiece(from, to Position) bool {
	if !b.IsValidMove(from, to) {
		return false
	}
	b.squares[to.Row][to.Col] = b.squares[from.Row][from.Col]
	b.squares[from.Row][from.Col] = nil
	return true
}

// pathClear reports whether every square strictly between from and to is
// empty. The squares must be aligned on a row, column or diagonal, so the
// walk below always terminates on to.
func (b *Board) pathClear(from, to Position) bool {
	rowStep := sign(to.Row - from.Row)
	colStep := sign(to.Col - from.Col)

	cur := Position{Row: from.Row + rowStep, Col: from.Col + colStep}
	for cur != to {
		if b.IsOccupied(cur) {
			return false
		}
		cur.Row += rowStep
		cur.Col += colStep
	}
	return true
}

// View returns the 8x8 grid of piece kind names, with the empty string
// marking an empty square. Color is not part of this view; clients that
// need it derive it from move order or the ASCII rendering.
func (b *Board) View() [8][8]string {
	var view [8][8]string
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := b.squares[r][c]; p != nil {
				view[r][c] = p.Kind.String()
			}
		}
	}
	return view
}

// ToASCII creates an ASCII representation of the board, White pieces in
// upper case, rank 8 on top.
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for c := 0; c < 8; c++ {
			if p := b.squares[r][c]; p != nil {
				sb.WriteByte(p.letter())
				sb.WriteByte(' ')
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
