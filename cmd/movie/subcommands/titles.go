package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/graph"
)

// TitlesCmd fetches movies by exact title.
var TitlesCmd = &cobra.Command{
	Use:   "titles <title>...",
	Short: "Show movies by title",
	Long: "Show movies by title.\n\n" +
		"Titles must match exactly. Titles with no matching movie are skipped.",
	Example: `  # Show two movies
  cinemalens movie titles "Heat" "Thief"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: validateOutput,
	RunE:    runTitles,
}

func init() {
	addOutputFlag(TitlesCmd)
}

func runTitles(cmd *cobra.Command, args []string) error {
	return withGraph(cmd.Context(), func(g graph.Graph) error {
		movies, err := g.GetMoviesByTitles(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("failed to fetch movies; %w", err)
		}
		return writeMovies(cmd.OutOrStdout(), movies)
	})
}
