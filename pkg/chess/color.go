// Package chess implements the board model, the per-piece movement rules
// and the turn bookkeeping for a single game. It is pure computation over
// in-memory state; transports and sessions live elsewhere.
package chess

import "fmt"

// Color represent a chess color
type Color string

// Possible color variations in a chess game
const (
	White Color = "w"
	Black Color = "b"
)

// Opp returns the opposite color for the given color.
func (c Color) Opp() Color {
	if c == White {
		return Black
	}

	return White
}

// ParseColor converts a wire value into a Color.
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return "", fmt.Errorf("unknown color %q", s)
	}
}
