package memory

import (
	"fmt"
	"time"
)

const (
	DefaultDimension     = 4
	DefaultMismatchDelay = 800 * time.Millisecond
	DefaultWinDelay      = 700 * time.Millisecond
	DefaultTickInterval  = time.Second
)

type Params struct {
	Dimension     int
	Symbols       []Symbol
	MismatchDelay time.Duration
	WinDelay      time.Duration
	TickInterval  time.Duration
}

func DefaultParams() Params {
	return Params{
		Dimension:     DefaultDimension,
		Symbols:       DefaultSymbols,
		MismatchDelay: DefaultMismatchDelay,
		WinDelay:      DefaultWinDelay,
		TickInterval:  DefaultTickInterval,
	}
}

// WithDimension returns a copy of p for a board of the given size.
func (p Params) WithDimension(dimension int) Params {
	p.Dimension = dimension
	return p
}

// MinTickInterval is the shortest timer interval Validate accepts.
const MinTickInterval = 100 * time.Millisecond

// Pairs is the number of symbol pairs on the board. Only meaningful once
// the board shape has been validated.
func (p Params) Pairs() int {
	return p.Dimension * p.Dimension / 2
}

// Validate checks the board shape and the timing values.
func (p Params) Validate() error {
	if err := p.validateBoard(); err != nil {
		return err
	}
	if p.TickInterval < MinTickInterval {
		return fmt.Errorf(
			"%w: tick interval %s is below %s",
			ErrInvalidTiming, p.TickInterval, MinTickInterval,
		)
	}
	if p.MismatchDelay < 0 {
		return fmt.Errorf("%w: negative mismatch delay %s", ErrInvalidTiming, p.MismatchDelay)
	}
	if p.WinDelay < 0 {
		return fmt.Errorf("%w: negative win delay %s", ErrInvalidTiming, p.WinDelay)
	}
	return nil
}

func (p Params) validateBoard() error {
	if p.Dimension <= 0 || p.Dimension%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDimension, p.Dimension)
	}
	// dimension > 2*len(symbols) already needs too many pairs; checked first
	// so that Pairs cannot overflow.
	if p.Dimension > 2*len(p.Symbols) || p.Pairs() > len(p.Symbols) {
		return fmt.Errorf(
			"%w: %dx%d board needs more than %d",
			ErrInsufficientSymbols, p.Dimension, p.Dimension, len(p.Symbols),
		)
	}
	seen := make(map[Symbol]bool, len(p.Symbols))
	for _, s := range p.Symbols {
		if seen[s] {
			return fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
		}
		seen[s] = true
	}
	return nil
}
