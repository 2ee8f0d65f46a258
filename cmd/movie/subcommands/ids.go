package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/graph"
)

// IDsCmd fetches several movies by node id.
var IDsCmd = &cobra.Command{
	Use:   "ids <id>...",
	Short: "Show movies by node ids",
	Long: "Show movies by node ids.\n\n" +
		"Ids with no matching movie are skipped.",
	Example: `  # Show three movies
  cinemalens movie ids 1 2 3`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: validateOutput,
	RunE:    runIDs,
}

func init() {
	addOutputFlag(IDsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withGraph(cmd.Context(), func(g graph.Graph) error {
		movies, err := g.GetMoviesByIDs(cmd.Context(), ids)
		if err != nil {
			return fmt.Errorf("failed to fetch movies; %w", err)
		}
		return writeMovies(cmd.OutOrStdout(), movies)
	})
}
