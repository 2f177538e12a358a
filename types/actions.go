package types

import (
	"fmt"
	"sort"
	"strings"
)

// ActionType is a parameterized action an agent may take.
type ActionType interface {
	Name() string
	// AllGroundings binds the action type to every legal set of parameters
	// for the agent in the given state. The order must be deterministic:
	// payoff matrix rows and columns are indexed by it.
	AllGroundings(s State, agent string) []GroundedAction
}

// GroundedAction is an action type bound to concrete parameters, scoped to
// one agent. Immutable once produced.
type GroundedAction struct {
	Agent  string
	Action string
	Params []string
}

func (g GroundedAction) Hash() string {
	if len(g.Params) == 0 {
		return g.Agent + ":" + g.Action
	}
	return g.Agent + ":" + g.Action + ":" + strings.Join(g.Params, ",")
}

// GroundedActionsFor enumerates all grounded actions available to the agent
// in the state, in the order of the declared action types. Fails if the
// agent ends up with an empty action set.
func GroundedActionsFor(s State, agent string, actionTypes []ActionType) ([]GroundedAction, error) {
	actions := make([]GroundedAction, 0)
	for _, at := range actionTypes {
		actions = append(actions, at.AllGroundings(s, agent)...)
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("agent %s in state %s: %w", agent, s.Hash(), ErrInvalidAgentConfiguration)
	}
	return actions, nil
}

// JointAction maps each participating agent to exactly one grounded action.
// Built fresh per payoff matrix cell and never mutated afterwards.
type JointAction struct {
	actions map[string]GroundedAction
}

func NewJointAction() *JointAction {
	return &JointAction{
		actions: make(map[string]GroundedAction),
	}
}

// Add records the agent's action. Each agent contributes exactly one action
// to a joint action.
func (ja *JointAction) Add(a GroundedAction) error {
	if _, ok := ja.actions[a.Agent]; ok {
		return fmt.Errorf("agent %s already has an action in this joint action", a.Agent)
	}
	ja.actions[a.Agent] = a
	return nil
}

func (ja *JointAction) Action(agent string) (GroundedAction, bool) {
	a, ok := ja.actions[agent]
	return a, ok
}

func (ja *JointAction) Len() int {
	return len(ja.actions)
}

// Agents returns the participating agent names in sorted order.
func (ja *JointAction) Agents() []string {
	agents := make([]string, 0, len(ja.actions))
	for a := range ja.actions {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	return agents
}

// Hash is deterministic regardless of the order actions were added in.
func (ja *JointAction) Hash() string {
	parts := make([]string, 0, len(ja.actions))
	for _, agent := range ja.Agents() {
		parts = append(parts, ja.actions[agent].Hash())
	}
	return strings.Join(parts, ";")
}
