package types

// AgentType declares the action types an agent of this type may use.
type AgentType struct {
	Name    string
	Actions []ActionType
}

// World is the registry of a running game: the agents in it, their types,
// and the models used to advance the game and pay the agents.
type World interface {
	RegisteredAgents() []string
	AgentType(agent string) (AgentType, bool)
	ActionModel() JointActionModel
	RewardModel() JointReward
}

// Agent is a player in a stochastic game. The world calls the observation
// hooks around and after each joint step; memoryless agents ignore them.
type Agent interface {
	Name() string
	GameStarting()
	ChooseAction(s State) (GroundedAction, error)
	ObserveOutcome(s State, ja *JointAction, rewards map[string]float64, next State, terminal bool)
	GameTerminated()
}
