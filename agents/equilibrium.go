// Package agents implements policies for playing two player stochastic
// games, built on the equilibrium solvers.
package agents

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/seeprybyrun/burlap/payoffs"
	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

// EquilibriumPlayingAgent treats every state as a single stage game over the
// immediate joint rewards and plays an equilibrium of it. The solution
// concept defaults to MaxMax. The agent is memoryless: the observation hooks
// do nothing.
type EquilibriumPlayingAgent struct {
	name   string
	world  types.World
	solver solvers.BimatrixSolver

	// replaces the world reward model for this agent's own payoffs when set
	internalReward types.JointReward

	rng *rand.Rand
}

var _ types.Agent = &EquilibriumPlayingAgent{}

// NewEquilibriumPlayingAgent creates an agent playing in the given world.
// A nil solver falls back to MaxMax.
func NewEquilibriumPlayingAgent(name string, world types.World, solver solvers.BimatrixSolver) *EquilibriumPlayingAgent {
	if solver == nil {
		solver = solvers.NewMaxMax()
	}
	return &EquilibriumPlayingAgent{
		name:   name,
		world:  world,
		solver: solver,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (a *EquilibriumPlayingAgent) Name() string {
	return a.name
}

// SetInternalReward installs an agent-local reward function used for this
// agent's side of the bimatrix instead of the world reward model.
func (a *EquilibriumPlayingAgent) SetInternalReward(jr types.JointReward) {
	a.internalReward = jr
}

// SetRandSeed reseeds the sampling source, for reproducible runs.
func (a *EquilibriumPlayingAgent) SetRandSeed(seed uint64) {
	a.rng = rand.New(rand.NewSource(seed))
}

func (a *EquilibriumPlayingAgent) GameStarting() {}

func (a *EquilibriumPlayingAgent) GameTerminated() {}

func (a *EquilibriumPlayingAgent) ObserveOutcome(s types.State, ja *types.JointAction, rewards map[string]float64, next types.State, terminal bool) {
}

// ChooseAction solves the immediate reward bimatrix of the state under the
// configured solution concept and samples a grounded action from the
// resulting row strategy.
func (a *EquilibriumPlayingAgent) ChooseAction(s types.State) (types.GroundedAction, error) {
	opponent, err := a.opponent()
	if err != nil {
		return types.GroundedAction{}, err
	}

	myActions, err := a.groundedActions(s, a.name)
	if err != nil {
		return types.GroundedAction{}, err
	}
	opponentActions, err := a.groundedActions(s, opponent)
	if err != nil {
		return types.GroundedAction{}, err
	}

	myReward := a.world.RewardModel()
	if a.internalReward != nil {
		myReward = a.internalReward
	}

	bimatrix, err := payoffs.FromJointRewards(s, a.name, opponent, myActions, opponentActions,
		a.world.ActionModel(), myReward, a.world.RewardModel())
	if err != nil {
		return types.GroundedAction{}, err
	}

	if err := a.solver.Solve(bimatrix.RowPayoffs, bimatrix.ColPayoffs); err != nil {
		return types.GroundedAction{}, err
	}

	idx, err := solvers.SampleStrategy(a.solver.LastRowStrategy(), a.rng)
	if err != nil {
		return types.GroundedAction{}, err
	}
	return myActions[idx], nil
}

func (a *EquilibriumPlayingAgent) groundedActions(s types.State, agent string) ([]types.GroundedAction, error) {
	at, ok := a.world.AgentType(agent)
	if !ok {
		return nil, fmt.Errorf("agent %s has no registered type: %w", agent, types.ErrInvalidAgentConfiguration)
	}
	return types.GroundedActionsFor(s, agent, at.Actions)
}

// opponent resolves the unique other registered agent.
func (a *EquilibriumPlayingAgent) opponent() (string, error) {
	registered := a.world.RegisteredAgents()
	if len(registered) != 2 {
		return "", fmt.Errorf("%d agents registered: %w", len(registered), types.ErrUnsupportedPlayerCount)
	}
	if registered[0] == a.name {
		return registered[1], nil
	}
	return registered[0], nil
}
