package types

import "errors"

// Sentinel errors for the equilibrium engine. All of them indicate a
// structural problem with the game being solved and none are retryable;
// callers are expected to stop the sweep or the game loop that hit them.
var (
	// ErrUnsupportedPlayerCount is returned when an operation that is only
	// defined for two player games is given a different number of agents.
	ErrUnsupportedPlayerCount = errors.New("game does not have exactly two agents")

	// ErrInvalidAgentConfiguration is returned when an agent has no grounded
	// actions in a state. An empty strategy space cannot be solved.
	ErrInvalidAgentConfiguration = errors.New("agent has no grounded actions")

	// ErrInfeasibleEquilibrium is returned when the equilibrium linear
	// program has no feasible point.
	ErrInfeasibleEquilibrium = errors.New("equilibrium program is infeasible")

	// ErrUnboundedObjective is returned when the equilibrium objective is
	// unbounded over the feasible region.
	ErrUnboundedObjective = errors.New("equilibrium objective is unbounded")

	// ErrMalformedDistribution is returned when a probability vector does
	// not sum to 1 and sampling from it would fall off the end.
	ErrMalformedDistribution = errors.New("strategy distribution does not sum to 1")
)
