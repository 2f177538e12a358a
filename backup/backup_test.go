package backup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

type tState string

func (s tState) Hash() string { return string(s) }

type pickActionType struct {
	choices []string
}

func (p pickActionType) Name() string { return "pick" }

func (p pickActionType) AllGroundings(s types.State, agent string) []types.GroundedAction {
	actions := make([]types.GroundedAction, 0, len(p.choices))
	for _, c := range p.choices {
		actions = append(actions, types.GroundedAction{Agent: agent, Action: "pick", Params: []string{c}})
	}
	return actions
}

func defsFor(agents map[string][]string) map[string]types.AgentType {
	defs := make(map[string]types.AgentType)
	for agent, choices := range agents {
		defs[agent] = types.AgentType{
			Name:    "picker",
			Actions: []types.ActionType{pickActionType{choices: choices}},
		}
	}
	return defs
}

// matrixQ indexes a fixed payoff matrix by the two agents' chosen params.
type matrixQ struct {
	rowAgent string
	colAgent string
	rows     []string
	cols     []string
	payoffs  [][]float64
}

func (m matrixQ) QValue(s types.State, ja *types.JointAction) float64 {
	ra, _ := ja.Action(m.rowAgent)
	ca, _ := ja.Action(m.colAgent)
	i := index(m.rows, ra.Params[0])
	j := index(m.cols, ca.Params[0])
	return m.payoffs[i][j]
}

func index(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

type qSources map[string]types.QSource

func (q qSources) AgentQSource(agent string) (types.QSource, bool) {
	src, ok := q[agent]
	return src, ok
}

func TestCorrelatedQSingleJointAction(t *testing.T) {
	defs := defsFor(map[string][]string{
		"a1": {"x"},
		"a2": {"x"},
	})
	qs := qSources{
		"a1": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"x"}, cols: []string{"x"}, payoffs: [][]float64{{3}}},
		"a2": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"x"}, cols: []string{"x"}, payoffs: [][]float64{{5}}},
	}

	operator := NewCorrelatedQ(solvers.Utilitarian)
	value, err := operator.Backup(tState("s0"), "a1", defs, qs)
	require.NoError(t, err)
	assert.InDelta(t, 3, value, 1e-6)
}

func TestCorrelatedQPlayerCount(t *testing.T) {
	defs := defsFor(map[string][]string{
		"a1": {"x"},
		"a2": {"x"},
		"a3": {"x"},
	})
	operator := NewCorrelatedQ(solvers.Utilitarian)
	_, err := operator.Backup(tState("s0"), "a1", defs, qSources{})
	if !errors.Is(err, types.ErrUnsupportedPlayerCount) {
		t.Errorf("expected ErrUnsupportedPlayerCount, got %v", err)
	}
}

func TestCorrelatedQIdempotent(t *testing.T) {
	defs := defsFor(map[string][]string{
		"a1": {"c", "d"},
		"a2": {"c", "d"},
	})
	qs := qSources{
		"a1": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"c", "d"}, cols: []string{"c", "d"},
			payoffs: [][]float64{{3, 0}, {5, 1}}},
		"a2": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"c", "d"}, cols: []string{"c", "d"},
			payoffs: [][]float64{{3, 5}, {0, 1}}},
	}

	operator := NewCorrelatedQ(solvers.Utilitarian)
	first, err := operator.Backup(tState("s0"), "a1", defs, qs)
	require.NoError(t, err)
	second, err := operator.Backup(tState("s0"), "a1", defs, qs)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the dilemma's only equilibrium is mutual defection
	assert.InDelta(t, 1, first, 1e-6)
}

func TestMaxQBackup(t *testing.T) {
	defs := defsFor(map[string][]string{
		"a1": {"x", "y"},
		"a2": {"x", "y"},
	})
	qs := qSources{
		"a1": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"x", "y"}, cols: []string{"x", "y"},
			payoffs: [][]float64{{2, 0}, {0, 2}}},
		"a2": matrixQ{rowAgent: "a1", colAgent: "a2", rows: []string{"x", "y"}, cols: []string{"x", "y"},
			payoffs: [][]float64{{1, 3}, {2, 0}}},
	}

	// max-max: the row player commits to row 0 (first global max), the
	// column player to column 1, so the backed up value is rowQ[0][1]
	operator := NewMaxQ(nil)
	value, err := operator.Backup(tState("s0"), "a1", defs, qs)
	require.NoError(t, err)
	assert.InDelta(t, 0, value, 1e-9)
}
