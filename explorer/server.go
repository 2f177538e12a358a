// Package explorer serves the equilibrium solvers over HTTP, to inspect
// what the engine does with a payoff matrix pair without wiring up a game.
package explorer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

type Server struct {
	addr   string
	logger *logrus.Logger
}

func NewServer(addr string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		addr:   addr,
		logger: logger,
	}
}

type SolveRequest struct {
	RowPayoffs [][]float64 `json:"row_payoffs" binding:"required"`
	ColPayoffs [][]float64 `json:"col_payoffs" binding:"required"`
	// "maxmax", "maxmin" or "correlated"
	Concept string `json:"concept"`
	// correlated only: "utilitarian", "egalitarian", "libertarian-row",
	// "libertarian-col"
	Objective string `json:"objective"`
}

type SolveResponse struct {
	RowStrategy     []float64   `json:"row_strategy,omitempty"`
	ColStrategy     []float64   `json:"col_strategy,omitempty"`
	JointStrategy   [][]float64 `json:"joint_strategy,omitempty"`
	ExpectedPayoffs []float64   `json:"expected_payoffs"`
}

func (s *Server) Run() error {
	s.logger.WithField("addr", s.addr).Info("starting solve server")
	return s.engine().Run(s.addr)
}

func (s *Server) engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/solve", s.handleSolve)
	return r
}

func (s *Server) handleSolve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bimatrix, err := solvers.NewBimatrixFrom(req.RowPayoffs, req.ColPayoffs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := solveGame(bimatrix, req.Concept, req.Objective)
	if err != nil {
		s.logger.WithError(err).Warn("solve failed")
		status := http.StatusBadRequest
		if errors.Is(err, types.ErrInfeasibleEquilibrium) || errors.Is(err, types.ErrUnboundedObjective) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func solveGame(bimatrix *solvers.Bimatrix, concept, objective string) (*SolveResponse, error) {
	switch concept {
	case "correlated":
		obj, err := parseObjective(objective)
		if err != nil {
			return nil, err
		}
		solver := solvers.NewCorrelatedEquilibriumSolver(obj)
		joint, err := solver.Solve(bimatrix.RowPayoffs, bimatrix.ColPayoffs)
		if err != nil {
			return nil, err
		}
		return &SolveResponse{
			JointStrategy:   joint,
			ExpectedPayoffs: solvers.ExpectedPayoffs(bimatrix.RowPayoffs, bimatrix.ColPayoffs, joint),
		}, nil
	case "maxmax", "maxmin", "":
		var solver solvers.BimatrixSolver = solvers.NewMaxMax()
		if concept == "maxmin" {
			solver = solvers.NewMaxMin()
		}
		if err := solver.Solve(bimatrix.RowPayoffs, bimatrix.ColPayoffs); err != nil {
			return nil, err
		}
		joint := solvers.JointFromMarginals(solver.LastRowStrategy(), solver.LastColStrategy())
		return &SolveResponse{
			RowStrategy:     solver.LastRowStrategy(),
			ColStrategy:     solver.LastColStrategy(),
			ExpectedPayoffs: solvers.ExpectedPayoffs(bimatrix.RowPayoffs, bimatrix.ColPayoffs, joint),
		}, nil
	default:
		return nil, errors.New("unknown solution concept: " + concept)
	}
}

func parseObjective(objective string) (solvers.CorrelatedObjective, error) {
	switch objective {
	case "", "utilitarian":
		return solvers.Utilitarian, nil
	case "egalitarian":
		return solvers.Egalitarian, nil
	case "libertarian-row":
		return solvers.LibertarianRow, nil
	case "libertarian-col":
		return solvers.LibertarianCol, nil
	}
	return solvers.Utilitarian, errors.New("unknown objective: " + objective)
}
