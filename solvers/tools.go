package solvers

// DistributionTolerance is how far from 1 the mass of a strategy or joint
// distribution produced by the solvers in this package may drift. Consumers
// do not renormalize; a distribution outside this tolerance is a solver bug.
const DistributionTolerance = 1e-9

// ExpectedPayoffs computes each player's expected payoff under the joint
// distribution: sum_ij joint[i][j] * payoff[i][j]. Index 0 is the row
// player, index 1 the column player. The joint distribution is used as
// given, without renormalization.
func ExpectedPayoffs(rowPayoffs, colPayoffs [][]float64, joint [][]float64) []float64 {
	expected := make([]float64, 2)
	for i := range joint {
		for j := range joint[i] {
			expected[0] += joint[i][j] * rowPayoffs[i][j]
			expected[1] += joint[i][j] * colPayoffs[i][j]
		}
	}
	return expected
}

// JointFromMarginals turns two independent strategies into the joint
// distribution of their outer product.
func JointFromMarginals(rowStrategy, colStrategy []float64) [][]float64 {
	joint := make([][]float64, len(rowStrategy))
	for i, rp := range rowStrategy {
		joint[i] = make([]float64, len(colStrategy))
		for j, cp := range colStrategy {
			joint[i][j] = rp * cp
		}
	}
	return joint
}
