package solvers

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/seeprybyrun/burlap/types"
)

// SampleStrategy draws one action index from the strategy: a uniform roll in
// [0, 1) lands in the first index whose cumulative probability exceeds it.
// If the cumulative mass never covers the roll the strategy does not sum to
// 1 and the upstream solver is broken.
func SampleStrategy(strategy []float64, rng *rand.Rand) (int, error) {
	roll := rng.Float64()
	sum := float64(0)
	for i, p := range strategy {
		sum += p
		if roll < sum {
			return i, nil
		}
	}
	return -1, fmt.Errorf("cumulative mass %v never covered draw %v: %w", sum, roll, types.ErrMalformedDistribution)
}
