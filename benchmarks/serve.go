package benchmarks

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seeprybyrun/burlap/explorer"
)

func ServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the equilibrium solvers over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return explorer.NewServer(addr, logrus.New()).Run()
		},
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:8090", "Address to listen on")
	return cmd
}
