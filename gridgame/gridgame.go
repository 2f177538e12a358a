// Package gridgame is a small two player grid world used to exercise the
// equilibrium engine end to end: both agents move simultaneously on a
// bounded grid, each towards its own goal cell.
package gridgame

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seeprybyrun/burlap/types"
)

type Position struct {
	X int
	Y int
}

// GameState holds each agent's position. Immutable: Perform returns copies.
type GameState struct {
	Positions map[string]Position
}

var _ types.State = &GameState{}

func NewGameState(positions map[string]Position) *GameState {
	copied := make(map[string]Position, len(positions))
	for a, p := range positions {
		copied[a] = p
	}
	return &GameState{Positions: copied}
}

func (s *GameState) Hash() string {
	agents := make([]string, 0, len(s.Positions))
	for a := range s.Positions {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	parts := make([]string, 0, len(agents))
	for _, a := range agents {
		p := s.Positions[a]
		parts = append(parts, fmt.Sprintf("%s:%d,%d", a, p.X, p.Y))
	}
	return strings.Join(parts, "|")
}

// Directions in the fixed order grounded actions are enumerated in.
var Directions = []string{"north", "south", "east", "west", "stay"}

// MoveActionType grounds to one move per direction.
type MoveActionType struct{}

var _ types.ActionType = MoveActionType{}

func (MoveActionType) Name() string {
	return "move"
}

func (MoveActionType) AllGroundings(s types.State, agent string) []types.GroundedAction {
	actions := make([]types.GroundedAction, 0, len(Directions))
	for _, dir := range Directions {
		actions = append(actions, types.GroundedAction{
			Agent:  agent,
			Action: "move",
			Params: []string{dir},
		})
	}
	return actions
}

// Game is the transition and reward model of the grid world.
type Game struct {
	Width  int
	Height int
	// per agent goal cells
	Goals map[string]Position

	GoalReward float64
	StepCost   float64
}

var _ types.JointActionModel = &Game{}
var _ types.JointReward = &Game{}

func NewGame(width, height int, goals map[string]Position) *Game {
	return &Game{
		Width:      width,
		Height:     height,
		Goals:      goals,
		GoalReward: 100,
		StepCost:   -1,
	}
}

// Perform moves every agent by its chosen direction. Moves off the grid are
// clamped; if two agents head for the same cell, both stay put.
func (g *Game) Perform(s types.State, ja *types.JointAction) types.State {
	gs := s.(*GameState)
	targets := make(map[string]Position, len(gs.Positions))
	for agent, pos := range gs.Positions {
		a, ok := ja.Action(agent)
		if !ok {
			targets[agent] = pos
			continue
		}
		targets[agent] = g.clamp(move(pos, a.Params[0]))
	}
	for agent, target := range targets {
		for other, otherTarget := range targets {
			if agent != other && target == otherTarget {
				targets[agent] = gs.Positions[agent]
				targets[other] = gs.Positions[other]
			}
		}
	}
	return NewGameState(targets)
}

// Reward pays each agent the goal reward when it lands on its own goal, the
// step cost otherwise.
func (g *Game) Reward(s types.State, ja *types.JointAction, next types.State) map[string]float64 {
	gs := next.(*GameState)
	rewards := make(map[string]float64, len(gs.Positions))
	for agent, pos := range gs.Positions {
		if goal, ok := g.Goals[agent]; ok && pos == goal {
			rewards[agent] = g.GoalReward
		} else {
			rewards[agent] = g.StepCost
		}
	}
	return rewards
}

// Terminal reports whether any agent has reached its goal.
func (g *Game) Terminal(s types.State) bool {
	gs := s.(*GameState)
	for agent, pos := range gs.Positions {
		if goal, ok := g.Goals[agent]; ok && pos == goal {
			return true
		}
	}
	return false
}

func (g *Game) clamp(p Position) Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= g.Width {
		p.X = g.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= g.Height {
		p.Y = g.Height - 1
	}
	return p
}

func move(p Position, dir string) Position {
	switch dir {
	case "north":
		p.Y++
	case "south":
		p.Y--
	case "east":
		p.X++
	case "west":
		p.X--
	}
	return p
}

// World registers two agents over the game models.
type World struct {
	game       *Game
	agents     []string
	agentTypes map[string]types.AgentType
}

var _ types.World = &World{}

func NewWorld(game *Game, agents ...string) *World {
	agentTypes := make(map[string]types.AgentType, len(agents))
	for _, a := range agents {
		agentTypes[a] = types.AgentType{
			Name:    "mover",
			Actions: []types.ActionType{MoveActionType{}},
		}
	}
	return &World{
		game:       game,
		agents:     agents,
		agentTypes: agentTypes,
	}
}

func (w *World) RegisteredAgents() []string {
	return w.agents
}

func (w *World) AgentType(agent string) (types.AgentType, bool) {
	at, ok := w.agentTypes[agent]
	return at, ok
}

func (w *World) ActionModel() types.JointActionModel {
	return w.game
}

func (w *World) RewardModel() types.JointReward {
	return w.game
}

// AgentDefinitions returns the registry as the map the backup operators
// take.
func (w *World) AgentDefinitions() map[string]types.AgentType {
	defs := make(map[string]types.AgentType, len(w.agentTypes))
	for a, at := range w.agentTypes {
		defs[a] = at
	}
	return defs
}

// EnumerateStates lists every placement of the agents on the grid, in a
// deterministic order.
func EnumerateStates(g *Game, agents []string) []*GameState {
	sorted := make([]string, len(agents))
	copy(sorted, agents)
	sort.Strings(sorted)

	states := []*GameState{NewGameState(map[string]Position{})}
	for _, agent := range sorted {
		next := make([]*GameState, 0, len(states)*g.Width*g.Height)
		for _, s := range states {
			for x := 0; x < g.Width; x++ {
				for y := 0; y < g.Height; y++ {
					positions := make(map[string]Position, len(s.Positions)+1)
					for a, p := range s.Positions {
						positions[a] = p
					}
					positions[agent] = Position{X: x, Y: y}
					next = append(next, NewGameState(positions))
				}
			}
		}
		states = next
	}
	return states
}
