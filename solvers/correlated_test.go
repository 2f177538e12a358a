package solvers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTol = 1e-6

// checkRationality verifies every correlated equilibrium constraint: for
// both players and every (recommended, deviation) action pair, following the
// recommendation pays at least as much as deviating.
func checkRationality(t *testing.T, rowPayoffs, colPayoffs, joint [][]float64) {
	t.Helper()
	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])

	for a := 0; a < nRows; a++ {
		for ap := 0; ap < nRows; ap++ {
			if ap == a {
				continue
			}
			follow, deviate := float64(0), float64(0)
			for j := 0; j < nCols; j++ {
				follow += joint[a][j] * rowPayoffs[a][j]
				deviate += joint[a][j] * rowPayoffs[ap][j]
			}
			assert.GreaterOrEqual(t, follow, deviate-testTol,
				"row player gains by deviating from %d to %d", a, ap)
		}
	}
	for b := 0; b < nCols; b++ {
		for bp := 0; bp < nCols; bp++ {
			if bp == b {
				continue
			}
			follow, deviate := float64(0), float64(0)
			for i := 0; i < nRows; i++ {
				follow += joint[i][b] * colPayoffs[i][b]
				deviate += joint[i][b] * colPayoffs[i][bp]
			}
			assert.GreaterOrEqual(t, follow, deviate-testTol,
				"col player gains by deviating from %d to %d", b, bp)
		}
	}
}

func checkJointDistribution(t *testing.T, joint [][]float64) {
	t.Helper()
	mass := float64(0)
	for i := range joint {
		for j := range joint[i] {
			assert.GreaterOrEqual(t, joint[i][j], float64(0))
			mass += joint[i][j]
		}
	}
	assert.InDelta(t, 1, mass, DistributionTolerance)
}

func TestCorrelatedSingleCell(t *testing.T) {
	rowPayoffs := [][]float64{{3}}
	colPayoffs := [][]float64{{5}}

	solver := NewCorrelatedEquilibriumSolver(Utilitarian)
	joint, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)
	assert.InDelta(t, 1, joint[0][0], DistributionTolerance)

	expected := ExpectedPayoffs(rowPayoffs, colPayoffs, joint)
	assert.InDelta(t, 3, expected[0], testTol)
	assert.InDelta(t, 5, expected[1], testTol)
}

func TestCorrelatedPrisonersDilemma(t *testing.T) {
	// defect strictly dominates, so all equilibrium mass sits on (1, 1)
	// even though the utilitarian objective prefers mutual cooperation
	rowPayoffs := [][]float64{{3, 0}, {5, 1}}
	colPayoffs := [][]float64{{3, 5}, {0, 1}}

	solver := NewCorrelatedEquilibriumSolver(Utilitarian)
	joint, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)

	checkJointDistribution(t, joint)
	checkRationality(t, rowPayoffs, colPayoffs, joint)
	assert.InDelta(t, 1, joint[1][1], testTol)
}

func TestCorrelatedChickenRationality(t *testing.T) {
	rowPayoffs := [][]float64{{6, 2}, {7, 0}}
	colPayoffs := [][]float64{{6, 7}, {2, 0}}

	solver := NewCorrelatedEquilibriumSolver(Utilitarian)
	joint, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)

	checkJointDistribution(t, joint)
	checkRationality(t, rowPayoffs, colPayoffs, joint)

	// (dare, chicken) is a pure equilibrium with welfare 9, so the
	// utilitarian optimum cannot be below that
	expected := ExpectedPayoffs(rowPayoffs, colPayoffs, joint)
	assert.GreaterOrEqual(t, expected[0]+expected[1], float64(9)-testTol)
}

func TestCorrelatedEgalitarian(t *testing.T) {
	// coordination game with asymmetric pure equilibria; mixing between
	// them lifts the worse-off player to 1.5
	rowPayoffs := [][]float64{{2, 0}, {0, 1}}
	colPayoffs := [][]float64{{1, 0}, {0, 2}}

	solver := NewCorrelatedEquilibriumSolver(Egalitarian)
	joint, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)

	checkJointDistribution(t, joint)
	checkRationality(t, rowPayoffs, colPayoffs, joint)

	expected := ExpectedPayoffs(rowPayoffs, colPayoffs, joint)
	assert.GreaterOrEqual(t, math.Min(expected[0], expected[1]), 1.5-testTol)
}

func TestCorrelatedLibertarian(t *testing.T) {
	rowPayoffs := [][]float64{{2, 0}, {0, 1}}
	colPayoffs := [][]float64{{1, 0}, {0, 2}}

	rowSolver := NewCorrelatedEquilibriumSolver(LibertarianRow)
	joint, err := rowSolver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)
	checkRationality(t, rowPayoffs, colPayoffs, joint)
	expected := ExpectedPayoffs(rowPayoffs, colPayoffs, joint)
	assert.InDelta(t, 2, expected[0], testTol)

	colSolver := NewCorrelatedEquilibriumSolver(LibertarianCol)
	joint, err = colSolver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)
	checkRationality(t, rowPayoffs, colPayoffs, joint)
	expected = ExpectedPayoffs(rowPayoffs, colPayoffs, joint)
	assert.InDelta(t, 2, expected[1], testTol)
}

func TestCorrelatedSolveIdempotent(t *testing.T) {
	rowPayoffs := [][]float64{{6, 2}, {7, 0}}
	colPayoffs := [][]float64{{6, 7}, {2, 0}}

	solver := NewCorrelatedEquilibriumSolver(Utilitarian)
	first, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)
	second, err := solver.Solve(rowPayoffs, colPayoffs)
	require.NoError(t, err)

	for i := range first {
		assert.InDeltaSlice(t, first[i], second[i], testTol)
	}
	for i := range second {
		assert.InDeltaSlice(t, second[i], solver.LastJointStrategy()[i], 0)
	}
}

func TestCorrelatedRejectsMalformedMatrices(t *testing.T) {
	solver := NewCorrelatedEquilibriumSolver(Utilitarian)
	if _, err := solver.Solve([][]float64{{1, 2}}, [][]float64{{1}}); err == nil {
		t.Errorf("expected shape error")
	}
	if _, err := solver.Solve(nil, nil); err == nil {
		t.Errorf("expected empty matrix error")
	}
}
