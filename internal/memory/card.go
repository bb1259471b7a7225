package memory

import (
	"strings"
)

type Symbol string

// DefaultSymbols is the stock alphabet. It supports boards up to 4x4.
var DefaultSymbols = []Symbol{
	"🥔", "🍒", "🥑", "🌽", "🥕", "🍇", "🍉", "🍌", "🥭", "🍍", "🍓", "🥝",
}

type Card struct {
	Symbol  Symbol `json:"symbol"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// FaceUp reports whether the card's symbol is visible to the player.
func (c Card) FaceUp() bool {
	return c.Flipped || c.Matched
}

func (c Card) String() string {
	if !c.FaceUp() {
		return "?"
	}
	return string(c.Symbol)
}

// Board is a square arrangement of cards addressed by index, row-major.
type Board []Card

// Dimension returns the side length of the board.
func (b Board) Dimension() int {
	d := 0
	for d*d < len(b) {
		d++
	}
	return d
}

func (b Board) InBounds(i int) bool {
	return 0 <= i && i < len(b)
}

func (b Board) AllMatched() bool {
	for _, c := range b {
		if !c.Matched {
			return false
		}
	}
	return true
}

func (b Board) Clone() Board {
	clone := make(Board, len(b))
	copy(clone, b)
	return clone
}

func (b Board) String() string {
	var sb strings.Builder
	dim := b.Dimension()
	for i, c := range b {
		sb.WriteString(c.String())
		if (i+1)%dim == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
