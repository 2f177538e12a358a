package solvers

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/seeprybyrun/burlap/types"
)

func TestSampleStrategyDeterministicBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		i, err := SampleStrategy([]float64{1.0, 0.0, 0.0}, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != 0 {
			t.Fatalf("expected index 0, got %d", i)
		}

		i, err = SampleStrategy([]float64{0.0, 1.0}, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i != 1 {
			t.Fatalf("expected index 1, got %d", i)
		}
	}
}

func TestSampleStrategyCoversSupport(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := make(map[int]int)
	for trial := 0; trial < 1000; trial++ {
		i, err := SampleStrategy([]float64{0.5, 0.5}, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[i]++
	}
	if seen[0] == 0 || seen[1] == 0 {
		t.Errorf("both indices should be sampled, got %v", seen)
	}
}

func TestSampleStrategyMalformed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	_, err := SampleStrategy([]float64{0, 0, 0}, rng)
	if !errors.Is(err, types.ErrMalformedDistribution) {
		t.Errorf("expected ErrMalformedDistribution, got %v", err)
	}
}
