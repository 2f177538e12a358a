package benchmarks

import (
	"fmt"
	"math"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/seeprybyrun/burlap/backup"
	"github.com/seeprybyrun/burlap/gridgame"
	"github.com/seeprybyrun/burlap/qstore"
	"github.com/seeprybyrun/burlap/solvers"
	"github.com/seeprybyrun/burlap/types"
)

func GridGameCommand() *cobra.Command {
	var (
		width     int
		height    int
		sweeps    int
		discount  float64
		objective string
	)
	cmd := &cobra.Command{
		Use:   "gridgame",
		Short: "Run correlated-Q value iteration over a two player grid game",
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := parseObjective(objective)
			if err != nil {
				return err
			}
			return GridGameValueIteration(width, height, sweeps, discount, obj, savePath)
		},
	}
	cmd.PersistentFlags().IntVar(&width, "width", 3, "Grid width")
	cmd.PersistentFlags().IntVar(&height, "height", 3, "Grid height")
	cmd.PersistentFlags().IntVar(&sweeps, "sweeps", 10, "Number of value iteration sweeps")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.9, "Discount factor")
	cmd.PersistentFlags().StringVar(&objective, "objective", "utilitarian", "Correlated equilibrium objective")
	return cmd
}

func parseObjective(objective string) (solvers.CorrelatedObjective, error) {
	switch objective {
	case "utilitarian":
		return solvers.Utilitarian, nil
	case "egalitarian":
		return solvers.Egalitarian, nil
	case "libertarian-row":
		return solvers.LibertarianRow, nil
	case "libertarian-col":
		return solvers.LibertarianCol, nil
	}
	return solvers.Utilitarian, fmt.Errorf("unknown objective: %s", objective)
}

// GridGameValueIteration sweeps the full grid game state space, backing up
// every joint-action Q-value through the correlated equilibrium operator
// until the configured number of sweeps is done. Writes the per-agent Q
// tables and a convergence plot to savePath.
func GridGameValueIteration(width, height, sweeps int, discount float64, objective solvers.CorrelatedObjective, savePath string) error {
	logger := logrus.New()

	agentOne := "agent0"
	agentTwo := "agent1"
	game := gridgame.NewGame(width, height, map[string]gridgame.Position{
		agentOne: {X: width - 1, Y: height - 1},
		agentTwo: {X: 0, Y: height - 1},
	})
	world := gridgame.NewWorld(game, agentOne, agentTwo)
	defs := world.AgentDefinitions()
	agents := world.RegisteredAgents()

	tables := qstore.NewAgentTables(agents, 0)
	operator := backup.NewCorrelatedQ(objective)
	states := gridgame.EnumerateStates(game, agents)

	logger.WithFields(logrus.Fields{
		"states":    len(states),
		"sweeps":    sweeps,
		"objective": objective.String(),
	}).Info("starting value iteration")

	deltas := make([]float64, 0, sweeps)
	for sweep := 0; sweep < sweeps; sweep++ {
		delta := float64(0)
		for _, s := range states {
			if game.Terminal(s) {
				continue
			}
			d, err := sweepState(s, agents, defs, game, tables, operator, discount)
			if err != nil {
				return err
			}
			delta = math.Max(delta, d)
		}
		deltas = append(deltas, delta)
		logger.WithFields(logrus.Fields{"sweep": sweep, "delta": delta}).Info("sweep done")
	}

	if err := os.MkdirAll(savePath, 0755); err != nil {
		return err
	}
	for _, agent := range agents {
		table, _ := tables.Table(agent)
		if err := table.Write(path.Join(savePath, agent+"_q.json")); err != nil {
			return err
		}
	}
	return plotDeltas(deltas, path.Join(savePath, "convergence.png"))
}

// sweepState refreshes every joint-action Q-value of one state, returning
// the largest change.
func sweepState(s *gridgame.GameState, agents []string, defs map[string]types.AgentType, game *gridgame.Game, tables *qstore.AgentTables, operator backup.SGBackupOperator, discount float64) (float64, error) {
	rowActions, err := types.GroundedActionsFor(s, agents[0], defs[agents[0]].Actions)
	if err != nil {
		return 0, err
	}
	colActions, err := types.GroundedActionsFor(s, agents[1], defs[agents[1]].Actions)
	if err != nil {
		return 0, err
	}

	delta := float64(0)
	for _, ra := range rowActions {
		for _, ca := range colActions {
			ja := types.NewJointAction()
			ja.Add(ra)
			ja.Add(ca)
			next := game.Perform(s, ja)
			rewards := game.Reward(s, ja, next)

			for _, agent := range agents {
				value := float64(0)
				if !game.Terminal(next) {
					value, err = operator.Backup(next, agent, defs, tables)
					if err != nil {
						return 0, err
					}
				}
				q := rewards[agent] + discount*value
				table, _ := tables.Table(agent)
				old := table.Get(s.Hash(), ja.Hash())
				delta = math.Max(delta, math.Abs(q-old))
				table.Set(s.Hash(), ja.Hash(), q)
			}
		}
	}
	return delta, nil
}

func plotDeltas(deltas []float64, file string) error {
	p := plot.New()
	p.Title.Text = "Correlated-Q value iteration"
	p.X.Label.Text = "Sweep"
	p.Y.Label.Text = "Max Q delta"

	points := make(plotter.XYs, len(deltas))
	for i, d := range deltas {
		points[i] = plotter.XY{
			X: float64(i),
			Y: d,
		}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add("max delta", line)
	return p.Save(8*vg.Inch, 4*vg.Inch, file)
}
