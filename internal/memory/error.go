package memory

import "fmt"

var (
	ErrInvalidDimension    = fmt.Errorf("board dimension must be even and positive")
	ErrInsufficientSymbols = fmt.Errorf("not enough symbols for board")
	ErrDuplicateSymbol     = fmt.Errorf("symbol alphabet contains duplicates")
	ErrInvalidTiming       = fmt.Errorf("invalid timing")
)

var ErrSessionClosed = fmt.Errorf("session closed")
