package benchmarks

import "github.com/spf13/cobra"

var (
	savePath string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "burlap",
		Short: "Equilibrium backup and play for two player stochastic games",
	}
	rootCommand.PersistentFlags().StringVarP(&savePath, "save", "s", "results", "Directory to save result data in")
	// adding the subcommands here
	rootCommand.AddCommand(GridGameCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
