package memory

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/memory-server/internal/shuffle"
)

func alphabet(n int) []Symbol {
	symbols := make([]Symbol, n)
	for i := range symbols {
		symbols[i] = Symbol(fmt.Sprintf("s%02d", i))
	}
	return symbols
}

func TestGenerateBoard(t *testing.T) {
	r := shuffle.NewRand(1)

	tests := []struct {
		name   string
		params Params
	}{
		{"2x2", DefaultParams().WithDimension(2)},
		{"4x4", DefaultParams().WithDimension(4)},
		{"6x6", Params{Dimension: 6, Symbols: alphabet(18)}},
		{"8x8", Params{Dimension: 8, Symbols: alphabet(40)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := GenerateBoard(test.params, r)
			require.NoError(t, err)

			dim := test.params.Dimension
			require.Len(t, board, dim*dim)
			assert.Equal(t, dim, board.Dimension())

			counts := make(map[Symbol]int)
			for i, c := range board {
				assert.False(t, c.Flipped, "card %d flipped", i)
				assert.False(t, c.Matched, "card %d matched", i)
				assert.Contains(t, test.params.Symbols, c.Symbol)
				counts[c.Symbol]++
			}
			assert.Len(t, counts, dim*dim/2)
			for s, n := range counts {
				assert.Equal(t, 2, n, "symbol %s", s)
			}
		})
	}
}

func TestGenerateBoardInvalidDimension(t *testing.T) {
	r := shuffle.NewRand(1)
	for _, dim := range []int{1, 3, 5, 0, -2} {
		_, err := GenerateBoard(Params{Dimension: dim, Symbols: alphabet(50)}, r)
		assert.ErrorIs(t, err, ErrInvalidDimension, "dimension %d", dim)
	}
}

func TestGenerateBoardInsufficientSymbols(t *testing.T) {
	r := shuffle.NewRand(1)

	tests := []struct {
		name   string
		params Params
	}{
		{"6x6 default alphabet", DefaultParams().WithDimension(6)},
		{"2x2 one symbol", Params{Dimension: 2, Symbols: alphabet(1)}},
		{"no symbols", Params{Dimension: 2}},
		{"square wraps to zero", DefaultParams().WithDimension(1 << 32)},
		{"square wraps negative", DefaultParams().WithDimension(3037000500)},
		{"largest even int", DefaultParams().WithDimension(math.MaxInt - 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := GenerateBoard(test.params, r)
			assert.ErrorIs(t, err, ErrInsufficientSymbols)
			assert.Nil(t, board)
		})
	}
}

func TestValidateTiming(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		err    error
	}{
		{"defaults", func(*Params) {}, nil},
		{"zero delays", func(p *Params) { p.MismatchDelay, p.WinDelay = 0, 0 }, nil},
		{"minimum tick", func(p *Params) { p.TickInterval = MinTickInterval }, nil},
		{"zero tick", func(p *Params) { p.TickInterval = 0 }, ErrInvalidTiming},
		{"nanosecond tick", func(p *Params) { p.TickInterval = time.Nanosecond }, ErrInvalidTiming},
		{"negative tick", func(p *Params) { p.TickInterval = -time.Second }, ErrInvalidTiming},
		{"negative mismatch delay", func(p *Params) { p.MismatchDelay = -1 }, ErrInvalidTiming},
		{"negative win delay", func(p *Params) { p.WinDelay = -1 }, ErrInvalidTiming},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := DefaultParams()
			test.modify(&p)
			err := p.Validate()
			if test.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.err)
			}
		})
	}
}

func TestNewSessionRejectsInvalidTiming(t *testing.T) {
	p := DefaultParams()
	p.TickInterval = 0
	s, err := NewSession(p, nil)
	assert.ErrorIs(t, err, ErrInvalidTiming)
	assert.Nil(t, s)
}

func TestGenerateBoardDuplicateSymbols(t *testing.T) {
	r := shuffle.NewRand(1)
	_, err := GenerateBoard(Params{Dimension: 2, Symbols: []Symbol{"a", "b", "a"}}, r)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestBoardString(t *testing.T) {
	board := Board{
		{Symbol: "A", Flipped: true},
		{Symbol: "B"},
		{Symbol: "A", Matched: true},
		{Symbol: "B"},
	}
	assert.Equal(t, "A ?\nA ?\n", board.String())
	assert.False(t, board.AllMatched())
}
