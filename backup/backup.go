// Package backup implements equilibrium value-backup operators for
// two player stochastic games: the state's Q-values become a bimatrix, the
// bimatrix is solved for an equilibrium, and the agent's expected payoff
// under that equilibrium is the backed up value.
package backup

import (
	"fmt"

	"github.com/seeprybyrun/burlap/payoffs"
	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

// SGBackupOperator turns the joint-action Q-values of one state into a
// scalar value estimate for one agent. Implementations read the Q-sources
// and never write them; repeated calls with the same inputs return the same
// value.
type SGBackupOperator interface {
	Backup(s types.State, forAgent string, defs map[string]types.AgentType, qSources types.QSourceMap) (float64, error)
}

// CorrelatedQ backs up with a correlated equilibrium over the joint
// Q-value bimatrix, per Greenwald and Hall's correlated Q-learning.
type CorrelatedQ struct {
	solver *solvers.CorrelatedEquilibriumSolver
}

var _ SGBackupOperator = &CorrelatedQ{}

func NewCorrelatedQ(objective solvers.CorrelatedObjective) *CorrelatedQ {
	return &CorrelatedQ{
		solver: solvers.NewCorrelatedEquilibriumSolver(objective),
	}
}

func (c *CorrelatedQ) Backup(s types.State, forAgent string, defs map[string]types.AgentType, qSources types.QSourceMap) (float64, error) {
	other, err := otherAgent(forAgent, defs)
	if err != nil {
		return 0, err
	}

	bimatrix, _, _, err := payoffs.FromQSources(s, forAgent, other, defs, qSources)
	if err != nil {
		return 0, err
	}

	joint, err := c.solver.Solve(bimatrix.RowPayoffs, bimatrix.ColPayoffs)
	if err != nil {
		return 0, err
	}

	expected := solvers.ExpectedPayoffs(bimatrix.RowPayoffs, bimatrix.ColPayoffs, joint)
	return expected[0], nil
}

// MaxQ backs up with independent marginal strategies from a bimatrix
// solution concept (MaxMax unless configured otherwise).
type MaxQ struct {
	solver solvers.BimatrixSolver
}

var _ SGBackupOperator = &MaxQ{}

func NewMaxQ(solver solvers.BimatrixSolver) *MaxQ {
	if solver == nil {
		solver = solvers.NewMaxMax()
	}
	return &MaxQ{solver: solver}
}

func (m *MaxQ) Backup(s types.State, forAgent string, defs map[string]types.AgentType, qSources types.QSourceMap) (float64, error) {
	other, err := otherAgent(forAgent, defs)
	if err != nil {
		return 0, err
	}

	bimatrix, _, _, err := payoffs.FromQSources(s, forAgent, other, defs, qSources)
	if err != nil {
		return 0, err
	}

	if err := m.solver.Solve(bimatrix.RowPayoffs, bimatrix.ColPayoffs); err != nil {
		return 0, err
	}

	joint := solvers.JointFromMarginals(m.solver.LastRowStrategy(), m.solver.LastColStrategy())
	expected := solvers.ExpectedPayoffs(bimatrix.RowPayoffs, bimatrix.ColPayoffs, joint)
	return expected[0], nil
}

// otherAgent resolves the unique opponent of forAgent among the agent
// definitions.
func otherAgent(forAgent string, defs map[string]types.AgentType) (string, error) {
	if len(defs) != 2 {
		return "", fmt.Errorf("%d agents defined: %w", len(defs), types.ErrUnsupportedPlayerCount)
	}
	if _, ok := defs[forAgent]; !ok {
		return "", fmt.Errorf("agent %s is not among the defined agents", forAgent)
	}
	for name := range defs {
		if name != forAgent {
			return name, nil
		}
	}
	return "", fmt.Errorf("agent %s is the only defined agent", forAgent)
}
