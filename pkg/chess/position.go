package chess

// Position identifies a square by zero-based row and column. Row 0 is
// White's back rank and rows grow toward Black; columns are files a-h.
// The type itself carries no validation, Board.IsValidMove range-checks
// before any grid access.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position addresses a square on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}
