// Package movie provides the movie parent command and subcommands.
package movie

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/cmd/movie/subcommands"
)

// MovieCmd is the parent command for movie lookups.
var MovieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Look up movies in the graph",
	Long: "Look up movies in the graph.\n\n" +
		"Movies can be fetched by node id or by exact title. Each result lists the " +
		"movie's properties together with its actors, directors, genres and release year.",
}

func init() {
	MovieCmd.AddCommand(subcommands.GetCmd)
	MovieCmd.AddCommand(subcommands.IDsCmd)
	MovieCmd.AddCommand(subcommands.TitlesCmd)
}
