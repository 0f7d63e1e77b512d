package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStandardLayout(t *testing.T) {
	b := NewBoard()

	wantBack := [8]string{"Rook", "Knight", "Bishop", "Queen", "King", "Bishop", "Knight", "Rook"}
	view := b.View()

	for col := 0; col < 8; col++ {
		assert.Equal(t, wantBack[col], view[0][col])
		assert.Equal(t, wantBack[col], view[7][col])
		assert.Equal(t, "Pawn", view[1][col])
		assert.Equal(t, "Pawn", view[6][col])
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			assert.Empty(t, view[row][col])
		}
	}

	// Colors per rank.
	for col := 0; col < 8; col++ {
		p, ok := b.PieceAt(Position{0, col})
		require.True(t, ok)
		assert.Equal(t, White, p.Color)

		p, ok = b.PieceAt(Position{7, col})
		require.True(t, ok)
		assert.Equal(t, Black, p.Color)
	}
}

func TestSetupResetsDirtyBoard(t *testing.T) {
	b := NewBoard()
	require.True(t, b.MovePiece(Position{1, 4}, Position{3, 4}))
	place(b, Position{4, 4}, Piece{Queen, Black})

	b.Setup()

	if diff := cmp.Diff(NewBoard().View(), b.View()); diff != "" {
		t.Errorf("board after reset differs from starting layout (-want +got):\n%s", diff)
	}
}

func TestIsValidMoveFailsClosed(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name     string
		from, to Position
	}{
		{"from row negative", Position{-1, 0}, Position{0, 0}},
		{"from col too large", Position{0, 8}, Position{0, 0}},
		{"to row too large", Position{0, 0}, Position{8, 0}},
		{"to col negative", Position{0, 0}, Position{0, -1}},
		{"empty from square", Position{4, 4}, Position{5, 4}},
		{"same color destination", Position{0, 3}, Position{1, 3}},
		{"zero move", Position{0, 4}, Position{0, 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, b.IsValidMove(tc.from, tc.to))
		})
	}
}

func TestMovePieceNoopOnIllegalMove(t *testing.T) {
	b := NewBoard()
	before := b.View()

	assert.False(t, b.MovePiece(Position{0, 0}, Position{0, 4}))
	assert.False(t, b.MovePiece(Position{1, 4}, Position{4, 4}))
	assert.False(t, b.MovePiece(Position{-2, 0}, Position{3, 0}))

	if diff := cmp.Diff(before, b.View()); diff != "" {
		t.Errorf("illegal moves mutated the board (-want +got):\n%s", diff)
	}
}

func TestMovePieceMutatesExactlyTwoSquares(t *testing.T) {
	b := NewBoard()
	before := b.View()

	require.True(t, b.MovePiece(Position{0, 1}, Position{2, 2}))
	after := b.View()

	changed := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if before[r][c] != after[r][c] {
				changed++
			}
		}
	}
	assert.Equal(t, 2, changed)
	assert.Empty(t, after[0][1])
	assert.Equal(t, "Knight", after[2][2])
}

// Opening scenarios on a fresh board.
func TestFreshBoardScenarios(t *testing.T) {
	t.Run("white pawn double advance", func(t *testing.T) {
		b := NewBoard()
		assert.True(t, b.MovePiece(Position{1, 4}, Position{3, 4}))
	})

	t.Run("white pawn triple advance rejected", func(t *testing.T) {
		b := NewBoard()
		assert.False(t, b.MovePiece(Position{1, 4}, Position{4, 4}))
	})

	t.Run("rook blocked by own knight", func(t *testing.T) {
		b := NewBoard()
		assert.False(t, b.MovePiece(Position{0, 0}, Position{0, 4}))
	})

	t.Run("knight jumps out", func(t *testing.T) {
		b := NewBoard()
		assert.True(t, b.MovePiece(Position{0, 1}, Position{2, 2}))
	})

	t.Run("both knights develop", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.MovePiece(Position{0, 1}, Position{2, 2}))
		require.True(t, b.MovePiece(Position{7, 1}, Position{5, 2}))

		view := b.View()
		assert.Equal(t, "Knight", view[2][2])
		assert.Equal(t, "Knight", view[5][2])
		assert.Empty(t, view[0][1])
		assert.Empty(t, view[7][1])
	})
}

func TestToASCII(t *testing.T) {
	b := NewBoard()
	out := b.ToASCII()

	assert.Contains(t, out, "  a b c d e f g h")
	assert.Contains(t, out, "1 R N B Q K B N R  1")
	assert.Contains(t, out, "8 r n b q k b n r  8")
	assert.Contains(t, out, "4 . . . . . . . .  4")
}
