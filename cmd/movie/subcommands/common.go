package subcommands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/config"
	"github.com/leefowlercu/cinemalens/internal/graph"
)

// newGraph is replaced in tests.
var newGraph = cmdutil.NewGraph

// outputFormat is shared by every movie subcommand.
var outputFormat string

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", cmdutil.FormatText, "Output format (text, json, yaml)")
}

func validateOutput(cmd *cobra.Command, args []string) error {
	if err := cmdutil.ValidateFormat(outputFormat); err != nil {
		return err
	}
	cmd.SilenceUsage = true
	return nil
}

// withGraph connects to the configured graph for the duration of fn.
func withGraph(ctx context.Context, fn func(graph.Graph) error) error {
	cfg := config.Get()
	logger := slog.Default()

	g, err := newGraph(&cfg.Graph, logger)
	if err != nil {
		return err
	}

	if err := g.Start(ctx); err != nil {
		return fmt.Errorf("failed to connect to graph database; %w", err)
	}
	defer func() { _ = g.Stop(ctx) }()

	return fn(g)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid movie id %q; must be an integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writeMovies(w io.Writer, movies []graph.Movie) error {
	if outputFormat != cmdutil.FormatText {
		return cmdutil.WriteStructured(w, outputFormat, movies)
	}

	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return nil
	}

	for i := range movies {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeMovieText(w, &movies[i])
	}
	return nil
}

func writeMovieText(w io.Writer, m *graph.Movie) {
	fmt.Fprintf(w, "%s (id %d)\n", m.Title, m.ID)
	if m.Year != nil {
		fmt.Fprintf(w, "  Year:      %d\n", *m.Year)
	}
	writeList(w, "Directors", m.Directors)
	writeList(w, "Actors", m.Actors)
	writeList(w, "Genres", m.Genres)

	for _, key := range slices.Sorted(maps.Keys(m.Properties)) {
		if key == "title" {
			continue
		}
		fmt.Fprintf(w, "  %-10s %v\n", key+":", m.Properties[key])
	}
}

func writeList(w io.Writer, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-10s %s\n", label+":", strings.Join(values, ", "))
}
