package solvers

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/seeprybyrun/burlap/types"
)

// CorrelatedObjective picks one correlated equilibrium among the generally
// infinite feasible set.
type CorrelatedObjective int

const (
	// Utilitarian maximizes the sum of both players' expected payoffs.
	Utilitarian CorrelatedObjective = iota
	// Egalitarian maximizes the minimum of the two expected payoffs.
	Egalitarian
	// LibertarianRow maximizes the row player's expected payoff.
	LibertarianRow
	// LibertarianCol maximizes the column player's expected payoff.
	LibertarianCol
)

func (o CorrelatedObjective) String() string {
	switch o {
	case Utilitarian:
		return "utilitarian"
	case Egalitarian:
		return "egalitarian"
	case LibertarianRow:
		return "libertarian-row"
	case LibertarianCol:
		return "libertarian-col"
	}
	return "unknown"
}

// CorrelatedEquilibriumSolver solves for a joint distribution over action
// pairs under which neither player gains by unilaterally deviating from a
// recommended action. The objective, fixed at construction, selects one
// point of the feasible region. Solve is idempotent for identical inputs.
type CorrelatedEquilibriumSolver struct {
	objective CorrelatedObjective
	lastJoint [][]float64
}

func NewCorrelatedEquilibriumSolver(objective CorrelatedObjective) *CorrelatedEquilibriumSolver {
	return &CorrelatedEquilibriumSolver{objective: objective}
}

func (c *CorrelatedEquilibriumSolver) Objective() CorrelatedObjective {
	return c.objective
}

// LastJointStrategy returns the joint distribution of the previous Solve
// call, or nil if Solve has not run yet.
func (c *CorrelatedEquilibriumSolver) LastJointStrategy() [][]float64 {
	return c.lastJoint
}

// Solve formulates the correlated equilibrium constraints as a linear
// program in standard form and solves it with the simplex method. The
// returned distribution is rows x cols, non-negative, and sums to 1 within
// DistributionTolerance.
func (c *CorrelatedEquilibriumSolver) Solve(rowPayoffs, colPayoffs [][]float64) ([][]float64, error) {
	if err := validateShape(rowPayoffs, colPayoffs); err != nil {
		return nil, err
	}

	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])

	rationality := rationalityConstraints(rowPayoffs, colPayoffs)

	var objC []float64
	var a *mat.Dense
	var b []float64
	if c.objective == Egalitarian {
		objC, a, b = egalitarianProgram(rowPayoffs, colPayoffs, rationality)
	} else {
		objC, a, b = welfareProgram(rowPayoffs, colPayoffs, rationality, c.objective)
	}

	_, x, err := lp.Simplex(objC, a, b, 1e-10, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, fmt.Errorf("%v objective: %w", c.objective, types.ErrInfeasibleEquilibrium)
		case errors.Is(err, lp.ErrUnbounded):
			return nil, fmt.Errorf("%v objective: %w", c.objective, types.ErrUnboundedObjective)
		default:
			return nil, fmt.Errorf("correlated equilibrium program: %v: %w", err, types.ErrInfeasibleEquilibrium)
		}
	}

	joint := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		joint[i] = make([]float64, nCols)
		for j := 0; j < nCols; j++ {
			joint[i][j] = x[i*nCols+j]
		}
	}
	c.lastJoint = joint
	return joint, nil
}

// rationalityConstraints returns one coefficient vector per (player,
// recommended action, deviation) triple, each encoding "expected gain of the
// deviation <= 0" over the flattened joint distribution.
//
// For the row player recommended a with deviation a', the cell (a, j)
// carries rowPayoffs[a'][j] - rowPayoffs[a][j]; symmetrically for the column
// player over colPayoffs.
func rationalityConstraints(rowPayoffs, colPayoffs [][]float64) [][]float64 {
	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])
	n := nRows * nCols

	constraints := make([][]float64, 0, nRows*(nRows-1)+nCols*(nCols-1))
	for a := 0; a < nRows; a++ {
		for ap := 0; ap < nRows; ap++ {
			if ap == a {
				continue
			}
			coeffs := make([]float64, n)
			for j := 0; j < nCols; j++ {
				coeffs[a*nCols+j] = rowPayoffs[ap][j] - rowPayoffs[a][j]
			}
			constraints = append(constraints, coeffs)
		}
	}
	for b := 0; b < nCols; b++ {
		for bp := 0; bp < nCols; bp++ {
			if bp == b {
				continue
			}
			coeffs := make([]float64, n)
			for i := 0; i < nRows; i++ {
				coeffs[i*nCols+b] = colPayoffs[i][bp] - colPayoffs[i][b]
			}
			constraints = append(constraints, coeffs)
		}
	}
	return constraints
}

// welfareProgram builds the standard form LP for the linear objectives:
// variables [p | rationality slacks], constraints sum(p) = 1 and
// rationality + slack = 0, minimizing the negated welfare of the objective.
func welfareProgram(rowPayoffs, colPayoffs [][]float64, rationality [][]float64, objective CorrelatedObjective) ([]float64, *mat.Dense, []float64) {
	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])
	n := nRows * nCols
	m := len(rationality)

	nVars := n + m
	objC := make([]float64, nVars)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			switch objective {
			case LibertarianRow:
				objC[i*nCols+j] = -rowPayoffs[i][j]
			case LibertarianCol:
				objC[i*nCols+j] = -colPayoffs[i][j]
			default:
				objC[i*nCols+j] = -(rowPayoffs[i][j] + colPayoffs[i][j])
			}
		}
	}

	a := mat.NewDense(1+m, nVars, nil)
	b := make([]float64, 1+m)
	b[0] = 1
	for k := 0; k < n; k++ {
		a.Set(0, k, 1)
	}
	for r, coeffs := range rationality {
		for k, v := range coeffs {
			a.Set(1+r, k, v)
		}
		a.Set(1+r, n+r, 1)
	}
	return objC, a, b
}

// egalitarianProgram maximizes an auxiliary welfare floor v with
// v <= each player's expected payoff. v is free, so it enters the standard
// form split as vPlus - vMinus: variables
// [p | vPlus | vMinus | rationality slacks | floor slacks].
func egalitarianProgram(rowPayoffs, colPayoffs [][]float64, rationality [][]float64) ([]float64, *mat.Dense, []float64) {
	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])
	n := nRows * nCols
	m := len(rationality)

	vPlus := n
	vMinus := n + 1
	ratSlack := n + 2
	floorSlack := n + 2 + m
	nVars := n + 2 + m + 2

	objC := make([]float64, nVars)
	objC[vPlus] = -1
	objC[vMinus] = 1

	a := mat.NewDense(1+m+2, nVars, nil)
	b := make([]float64, 1+m+2)
	b[0] = 1
	for k := 0; k < n; k++ {
		a.Set(0, k, 1)
	}
	for r, coeffs := range rationality {
		for k, v := range coeffs {
			a.Set(1+r, k, v)
		}
		a.Set(1+r, ratSlack+r, 1)
	}
	// v - expected payoff of each player stays <= 0
	payoffs := [][][]float64{rowPayoffs, colPayoffs}
	for player, pay := range payoffs {
		row := 1 + m + player
		for i := 0; i < nRows; i++ {
			for j := 0; j < nCols; j++ {
				a.Set(row, i*nCols+j, -pay[i][j])
			}
		}
		a.Set(row, vPlus, 1)
		a.Set(row, vMinus, -1)
		a.Set(row, floorSlack+player, 1)
	}
	return objC, a, b
}
