// Package shuffle holds the randomisation primitives used to lay out boards.
package shuffle

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

var ErrInvalidArgument = fmt.Errorf("invalid argument")

// SeededRand returns a generator seeded from the runtime's hash seed, so every
// process gets its own sequence.
func SeededRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewRand returns a reproducible generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly permuted copy of seq. seq is left untouched.
func Shuffle[T any](r *rand.Rand, seq []T) []T {
	clone := make([]T, len(seq))
	copy(clone, seq)
	for i := len(clone) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		clone[i], clone[j] = clone[j], clone[i]
	}
	return clone
}

// PickRandom draws count elements from pool without replacement. Elements are
// distinct by position; pool itself is not modified.
func PickRandom[T any](r *rand.Rand, pool []T, count int) ([]T, error) {
	if count < 0 || count > len(pool) {
		return nil, fmt.Errorf(
			"%w: cannot pick %d out of %d", ErrInvalidArgument, count, len(pool),
		)
	}

	candidates := make([]T, len(pool))
	copy(candidates, pool)

	/*
	 * Swap each pick to the tail of the live region and shrink it, like
	 * placing mines from a candidate list.
	 */
	result := make([]T, 0, count)
	k := len(candidates)
	for range count {
		i := r.IntN(k)
		result = append(result, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return result, nil
}
