package types

// QSource is a read-only view of one agent's learned joint-action values.
// The engine only reads it; the learning loop that owns it must not update
// values for a state while a backup over that state is in flight.
type QSource interface {
	QValue(s State, ja *JointAction) float64
}

// QSourceMap resolves the QSource of each agent in the game.
type QSourceMap interface {
	AgentQSource(agent string) (QSource, bool)
}
