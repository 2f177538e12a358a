package types

// State of the game that agents observe and act in.
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
}

// JointActionModel advances a state by one joint action.
type JointActionModel interface {
	Perform(s State, ja *JointAction) State
}

// JointReward maps a transition to the reward each agent receives for it.
// The returned map is keyed by agent name.
type JointReward interface {
	Reward(s State, ja *JointAction, next State) map[string]float64
}
