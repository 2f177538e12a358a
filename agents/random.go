package agents

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/seeprybyrun/burlap/types"
)

// RandomAgent picks uniformly among its grounded actions. Baseline opponent
// for the equilibrium players.
type RandomAgent struct {
	name  string
	world types.World
	rand  rand.Source
}

var _ types.Agent = &RandomAgent{}

func NewRandomAgent(name string, world types.World) *RandomAgent {
	return &RandomAgent{
		name:  name,
		world: world,
		rand:  rand.NewSource(uint64(time.Now().UnixNano())),
	}
}

func (r *RandomAgent) Name() string {
	return r.name
}

func (r *RandomAgent) GameStarting() {}

func (r *RandomAgent) GameTerminated() {}

func (r *RandomAgent) ObserveOutcome(s types.State, ja *types.JointAction, rewards map[string]float64, next types.State, terminal bool) {
}

func (r *RandomAgent) ChooseAction(s types.State) (types.GroundedAction, error) {
	at, ok := r.world.AgentType(r.name)
	if !ok {
		return types.GroundedAction{}, fmt.Errorf("agent %s has no registered type: %w", r.name, types.ErrInvalidAgentConfiguration)
	}
	actions, err := types.GroundedActionsFor(s, r.name, at.Actions)
	if err != nil {
		return types.GroundedAction{}, err
	}

	weights := make([]float64, len(actions))
	for i := range weights {
		weights[i] = 1 / float64(len(actions))
	}
	i, ok := sampleuv.NewWeighted(weights, r.rand).Take()
	if !ok {
		return types.GroundedAction{}, errors.New("failed to sample a uniform action")
	}
	return actions[i], nil
}
