// Package payoffs reduces one state of a two player stochastic game to a
// bimatrix: every pair of the two agents' grounded actions becomes a cell
// holding each agent's scalar payoff. Matrices are built fresh per decision
// point and discarded after use.
package payoffs

import (
	"fmt"

	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

// FromQSources builds the bimatrix whose cells are the two agents' Q-values
// for each joint action in the state. The Q-sources are only read. The
// grounded action enumerations indexing the matrix rows and columns are
// returned with it.
func FromQSources(s types.State, rowAgent, colAgent string, defs map[string]types.AgentType, qSources types.QSourceMap) (*solvers.Bimatrix, []types.GroundedAction, []types.GroundedAction, error) {
	if len(defs) != 2 {
		return nil, nil, nil, fmt.Errorf("%d agents defined: %w", len(defs), types.ErrUnsupportedPlayerCount)
	}

	rowQ, ok := qSources.AgentQSource(rowAgent)
	if !ok {
		return nil, nil, nil, fmt.Errorf("no q-source registered for agent %s", rowAgent)
	}
	colQ, ok := qSources.AgentQSource(colAgent)
	if !ok {
		return nil, nil, nil, fmt.Errorf("no q-source registered for agent %s", colAgent)
	}

	rowActions, err := types.GroundedActionsFor(s, rowAgent, defs[rowAgent].Actions)
	if err != nil {
		return nil, nil, nil, err
	}
	colActions, err := types.GroundedActionsFor(s, colAgent, defs[colAgent].Actions)
	if err != nil {
		return nil, nil, nil, err
	}

	bimatrix := solvers.NewBimatrix(len(rowActions), len(colActions))
	for i, ra := range rowActions {
		for j, ca := range colActions {
			ja := types.NewJointAction()
			ja.Add(ra)
			ja.Add(ca)
			bimatrix.SetPayoff(i, j, rowQ.QValue(s, ja), colQ.QValue(s, ja))
		}
	}
	return bimatrix, rowActions, colActions, nil
}

// FromJointRewards builds the bimatrix by simulating each joint action once
// and reading off the immediate rewards. The reward models are resolved per
// agent by the caller: an agent-local reward function replaces the shared
// one for that agent's payoffs only.
func FromJointRewards(s types.State, rowAgent, colAgent string, rowActions, colActions []types.GroundedAction, model types.JointActionModel, rowReward, colReward types.JointReward) (*solvers.Bimatrix, error) {
	if len(rowActions) == 0 || len(colActions) == 0 {
		return nil, fmt.Errorf("empty grounded action set: %w", types.ErrInvalidAgentConfiguration)
	}

	bimatrix := solvers.NewBimatrix(len(rowActions), len(colActions))
	for i, ra := range rowActions {
		for j, ca := range colActions {
			ja := types.NewJointAction()
			ja.Add(ra)
			ja.Add(ca)
			next := model.Perform(s, ja)
			bimatrix.SetPayoff(i, j,
				rowReward.Reward(s, ja, next)[rowAgent],
				colReward.Reward(s, ja, next)[colAgent])
		}
	}
	return bimatrix, nil
}
