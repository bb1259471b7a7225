package memory

import (
	"math/rand/v2"

	"github.com/vancomm/memory-server/internal/shuffle"
)

// GenerateBoard lays out a fresh face-down board: Pairs() distinct symbols,
// each placed twice, in random order.
func GenerateBoard(params Params, r *rand.Rand) (Board, error) {
	if err := params.validateBoard(); err != nil {
		return nil, err
	}

	picks, err := shuffle.PickRandom(r, params.Symbols, params.Pairs())
	if err != nil {
		return nil, err
	}

	items := shuffle.Shuffle(r, append(picks, picks...))
	board := make(Board, len(items))
	for i, s := range items {
		board[i] = Card{Symbol: s}
	}
	return board, nil
}
