package solvers

import "errors"

// Bimatrix holds the row and the column player's payoff matrices of a two
// player game. Both matrices always share the same rows x cols shape.
type Bimatrix struct {
	RowPayoffs [][]float64
	ColPayoffs [][]float64
}

func NewBimatrix(nRows, nCols int) *Bimatrix {
	b := &Bimatrix{
		RowPayoffs: make([][]float64, nRows),
		ColPayoffs: make([][]float64, nRows),
	}
	for i := 0; i < nRows; i++ {
		b.RowPayoffs[i] = make([]float64, nCols)
		b.ColPayoffs[i] = make([]float64, nCols)
	}
	return b
}

// NewBimatrixFrom wraps existing payoff matrices, checking that they are
// rectangular and of equal dimension.
func NewBimatrixFrom(rowPayoffs, colPayoffs [][]float64) (*Bimatrix, error) {
	if err := validateShape(rowPayoffs, colPayoffs); err != nil {
		return nil, err
	}
	return &Bimatrix{RowPayoffs: rowPayoffs, ColPayoffs: colPayoffs}, nil
}

func (b *Bimatrix) Rows() int {
	return len(b.RowPayoffs)
}

func (b *Bimatrix) Cols() int {
	if len(b.RowPayoffs) == 0 {
		return 0
	}
	return len(b.RowPayoffs[0])
}

func (b *Bimatrix) SetPayoff(row, col int, rowPayoff, colPayoff float64) {
	b.RowPayoffs[row][col] = rowPayoff
	b.ColPayoffs[row][col] = colPayoff
}

func validateShape(rowPayoffs, colPayoffs [][]float64) error {
	if len(rowPayoffs) == 0 || len(rowPayoffs[0]) == 0 {
		return errors.New("payoff matrices are empty")
	}
	if len(rowPayoffs) != len(colPayoffs) {
		return errors.New("payoff matrices are not of equal dimension")
	}
	nCols := len(rowPayoffs[0])
	for i := range rowPayoffs {
		if len(rowPayoffs[i]) != nCols || len(colPayoffs[i]) != nCols {
			return errors.New("payoff matrices are not of equal dimension")
		}
	}
	return nil
}

// BimatrixSolver computes independent row and column player strategies for
// a bimatrix game under some solution concept. Solve is idempotent for
// identical inputs; the last computed strategies stay available for
// inspection until the next Solve call.
type BimatrixSolver interface {
	Solve(rowPayoffs, colPayoffs [][]float64) error
	LastRowStrategy() []float64
	LastColStrategy() []float64
}

// MaxMax selects, for each player independently, the action that player
// would take if the opponent cooperated to maximize the acting player's
// payoff. Ties break towards the first index so repeated solves of the same
// game give the same strategies.
type MaxMax struct {
	lastRow []float64
	lastCol []float64
}

var _ BimatrixSolver = &MaxMax{}

func NewMaxMax() *MaxMax {
	return &MaxMax{}
}

func (m *MaxMax) Solve(rowPayoffs, colPayoffs [][]float64) error {
	if err := validateShape(rowPayoffs, colPayoffs); err != nil {
		return err
	}

	bestRow := 0
	bestRowPayoff := rowPayoffs[0][0]
	bestCol := 0
	bestColPayoff := colPayoffs[0][0]
	for i := range rowPayoffs {
		for j := range rowPayoffs[i] {
			if rowPayoffs[i][j] > bestRowPayoff {
				bestRowPayoff = rowPayoffs[i][j]
				bestRow = i
			}
			if colPayoffs[i][j] > bestColPayoff {
				bestColPayoff = colPayoffs[i][j]
				bestCol = j
			}
		}
	}

	m.lastRow = oneHot(len(rowPayoffs), bestRow)
	m.lastCol = oneHot(len(rowPayoffs[0]), bestCol)
	return nil
}

func (m *MaxMax) LastRowStrategy() []float64 {
	return m.lastRow
}

func (m *MaxMax) LastColStrategy() []float64 {
	return m.lastCol
}

// MaxMin selects each player's maximin pure strategy: the action whose worst
// case payoff against any opponent action is largest. First index wins ties.
type MaxMin struct {
	lastRow []float64
	lastCol []float64
}

var _ BimatrixSolver = &MaxMin{}

func NewMaxMin() *MaxMin {
	return &MaxMin{}
}

func (m *MaxMin) Solve(rowPayoffs, colPayoffs [][]float64) error {
	if err := validateShape(rowPayoffs, colPayoffs); err != nil {
		return err
	}

	nRows := len(rowPayoffs)
	nCols := len(rowPayoffs[0])

	bestRow := 0
	bestRowSecurity := worstInRow(rowPayoffs, 0)
	for i := 1; i < nRows; i++ {
		if s := worstInRow(rowPayoffs, i); s > bestRowSecurity {
			bestRowSecurity = s
			bestRow = i
		}
	}

	bestCol := 0
	bestColSecurity := worstInCol(colPayoffs, 0)
	for j := 1; j < nCols; j++ {
		if s := worstInCol(colPayoffs, j); s > bestColSecurity {
			bestColSecurity = s
			bestCol = j
		}
	}

	m.lastRow = oneHot(nRows, bestRow)
	m.lastCol = oneHot(nCols, bestCol)
	return nil
}

func (m *MaxMin) LastRowStrategy() []float64 {
	return m.lastRow
}

func (m *MaxMin) LastColStrategy() []float64 {
	return m.lastCol
}

func worstInRow(payoffs [][]float64, i int) float64 {
	worst := payoffs[i][0]
	for _, v := range payoffs[i] {
		if v < worst {
			worst = v
		}
	}
	return worst
}

func worstInCol(payoffs [][]float64, j int) float64 {
	worst := payoffs[0][j]
	for i := range payoffs {
		if payoffs[i][j] < worst {
			worst = payoffs[i][j]
		}
	}
	return worst
}

func oneHot(n, i int) []float64 {
	s := make([]float64, n)
	s[i] = 1
	return s
}
