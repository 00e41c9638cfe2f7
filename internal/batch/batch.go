// Package batch partitions dataset indices into mini-batches.
package batch

import (
	"fmt"
	"math/rand/v2"

	"github.com/example/textcnn-prep/internal/preperr"
)

// Batches maps a batch number (the slice index) to the dataset indices in
// that batch. Every index in [0, N) appears exactly once across all batches.
type Batches [][]int

// Len returns the number of batches.
func (b Batches) Len() int {
	return len(b)
}

// Total returns the number of indices across all batches.
func (b Batches) Total() int {
	n := 0
	for _, idx := range b {
		n += len(idx)
	}

	return n
}

// Indices splits the indices 0..dataSize-1 into contiguous batches of
// batchSize. The last batch holds the remainder. When shuffle is set the
// ordering is a uniform random permutation drawn from rng; a nil rng uses
// the package-level math/rand/v2 source.
func Indices(dataSize, batchSize int, shuffle bool, rng *rand.Rand) (Batches, error) {
	if dataSize <= 0 {
		return nil, fmt.Errorf("batch: data size %d: %w", dataSize, preperr.ErrInvalidArgument)
	}

	if batchSize <= 0 {
		return nil, fmt.Errorf("batch: batch size %d: %w", batchSize, preperr.ErrInvalidArgument)
	}

	order := ordering(dataSize, shuffle, rng)
	numBatches := (dataSize-1)/batchSize + 1

	out := make(Batches, numBatches)
	for i := range out {
		start := i * batchSize
		end := min(start+batchSize, dataSize)
		out[i] = order[start:end:end]
	}

	return out, nil
}

func ordering(n int, shuffle bool, rng *rand.Rand) []int {
	if !shuffle {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}

		return order
	}

	if rng == nil {
		return rand.Perm(n)
	}

	return rng.Perm(n)
}
