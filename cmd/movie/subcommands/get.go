package subcommands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/graph"
)

// GetCmd fetches a single movie by node id.
var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a movie by node id",
	Long: "Show a movie by node id.\n\n" +
		"Fails when no movie node has the given id.",
	Example: `  # Show movie 42
  cinemalens movie get 42

  # As JSON
  cinemalens movie get 42 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateOutput,
	RunE:    runGet,
}

func init() {
	addOutputFlag(GetCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withGraph(cmd.Context(), func(g graph.Graph) error {
		m, err := g.GetMovie(cmd.Context(), ids[0])
		if errors.Is(err, graph.ErrMovieNotFound) {
			return fmt.Errorf("movie %d not found; %w", ids[0], err)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch movie; %w", err)
		}
		return writeMovies(cmd.OutOrStdout(), []graph.Movie{*m})
	})
}
