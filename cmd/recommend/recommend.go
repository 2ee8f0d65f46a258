package recommend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/config"
	"github.com/leefowlercu/cinemalens/internal/cypher"
	"github.com/leefowlercu/cinemalens/internal/entities"
	"github.com/leefowlercu/cinemalens/internal/graph"
)

// Flag variables
var (
	recommendMinYear int
	recommendMaxYear int
	recommendGenres  string
	recommendDryRun  bool
	recommendOutput  string
)

// Component constructors, replaced in tests.
var (
	newExtractor = cmdutil.NewExtractor
	newGraph     = cmdutil.NewGraph
)

// RecommendCmd answers a natural language request with movie titles.
var RecommendCmd = &cobra.Command{
	Use:   "recommend <request>",
	Short: "Recommend movies for a natural language request",
	Long: "Recommend movies for a natural language request.\n\n" +
		"The request is sent to the configured extraction provider, which returns the " +
		"movies, people, genres and years it mentions. Year and genre overrides given " +
		"on the command line replace extracted values. The resulting record is compiled " +
		"to a Cypher query and run against the configured graph.\n\n" +
		"Extracted records are cached by request text, so repeating a request does not " +
		"call the provider again.",
	Example: `  # Movies like a reference title
  cinemalens recommend "something like Heat but less violent"

  # Restrict to a year range and genres
  cinemalens recommend "Tom Hanks movies" --min-year 1990 --max-year 2005 --genres drama,comedy

  # Show the generated query without running it
  cinemalens recommend "sci-fi from the 80s" --dry-run`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: validateRecommend,
	RunE:    runRecommend,
}

func init() {
	addRecommendFlags(RecommendCmd)
}

func addRecommendFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&recommendMinYear, "min-year", 0, "Earliest release year (overrides extracted value)")
	cmd.Flags().IntVar(&recommendMaxYear, "max-year", 0, "Latest release year (overrides extracted value)")
	cmd.Flags().StringVar(&recommendGenres, "genres", "", "Comma separated genres (overrides extracted genres)")
	cmd.Flags().BoolVar(&recommendDryRun, "dry-run", false, "Print the extracted record and query without querying the graph")
	cmd.Flags().StringVarP(&recommendOutput, "output", "o", cmdutil.FormatText, "Output format (text, json, yaml)")
}

func validateRecommend(cmd *cobra.Command, args []string) error {
	if err := cmdutil.ValidateFormat(recommendOutput); err != nil {
		return err
	}

	if strings.TrimSpace(strings.Join(args, " ")) == "" {
		return fmt.Errorf("request must not be empty")
	}

	if cmd.Flags().Changed("min-year") && cmd.Flags().Changed("max-year") && recommendMinYear > recommendMaxYear {
		return fmt.Errorf("--min-year %d is after --max-year %d", recommendMinYear, recommendMaxYear)
	}

	for _, g := range entities.ParseGenreList(recommendGenres) {
		if !entities.IsKnownGenre(g) {
			return fmt.Errorf("unknown genre %q; must be one of: %s", g, strings.Join(entities.Genres, ", "))
		}
	}

	cmd.SilenceUsage = true
	return nil
}

// Result is the outcome of one recommend run.
type Result struct {
	RequestID       string                 `json:"request_id" yaml:"request_id"`
	Request         string                 `json:"request" yaml:"request"`
	Entities        *entities.Entities     `json:"entities" yaml:"entities"`
	Query           cmdutil.QueryReport    `json:"query" yaml:"query"`
	SuggestedMovies []string               `json:"suggested_movies,omitempty" yaml:"suggested_movies,omitempty"`
	Recommendations []graph.Recommendation `json:"recommendations" yaml:"recommendations"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Get()
	request := strings.Join(args, " ")

	requestID := uuid.NewString()
	logger := slog.Default().With("request_id", requestID)
	logger.Info("recommend started", "request", request)

	ext, closeExt, err := newExtractor(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeExt() }()

	record, err := ext.Extract(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to extract entities; %w", err)
	}

	record = overrides(cmd).Apply(record)
	if err := record.Validate(); err != nil {
		logger.Warn("extracted record failed validation; continuing", "error", err)
	}
	logger.Debug("entities extracted", "entities", record.String())

	q := cypher.Generate(record)
	logger.Debug("query generated", "strategy", q.Strategy.String())

	result := &Result{
		RequestID:       requestID,
		Request:         request,
		Entities:        record,
		Query:           cmdutil.NewQueryReport(q),
		SuggestedMovies: record.SuggestedMovies(),
		Recommendations: []graph.Recommendation{},
	}

	if !recommendDryRun {
		recs, err := recommend(ctx, cfg, logger, q)
		if err != nil {
			return err
		}
		result.Recommendations = recs
		logger.Info("recommend completed", "results", len(recs), "strategy", q.Strategy.String())
	}

	if recommendOutput != cmdutil.FormatText {
		return cmdutil.WriteStructured(cmd.OutOrStdout(), recommendOutput, result)
	}
	return writeText(cmd.OutOrStdout(), result, q)
}

func recommend(ctx context.Context, cfg *config.Config, logger *slog.Logger, q *cypher.Query) ([]graph.Recommendation, error) {
	g, err := newGraph(&cfg.Graph, logger)
	if err != nil {
		return nil, err
	}

	if err := g.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to graph database; %w", err)
	}
	defer func() { _ = g.Stop(ctx) }()

	recs, err := g.Recommend(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations; %w", err)
	}
	return recs, nil
}

func overrides(cmd *cobra.Command) entities.Overrides {
	var o entities.Overrides
	if cmd.Flags().Changed("min-year") {
		o.MinYear = entities.Int(recommendMinYear)
	}
	if cmd.Flags().Changed("max-year") {
		o.MaxYear = entities.Int(recommendMaxYear)
	}
	o.Genres = entities.ParseGenreList(recommendGenres)
	return o
}

func writeText(w io.Writer, r *Result, q *cypher.Query) error {
	if r.Entities.ParsingReview != "" {
		fmt.Fprintf(w, "Interpretation: %s\n", r.Entities.ParsingReview)
	}
	if len(r.SuggestedMovies) > 0 {
		fmt.Fprintf(w, "Based on: %s\n", strings.Join(r.SuggestedMovies, ", "))
	}

	if recommendDryRun {
		fmt.Fprintf(w, "Entities: %s\n\n", r.Entities.String())
		return cmdutil.WriteQuery(w, cmdutil.FormatText, q)
	}

	if len(r.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return nil
	}

	for i, rec := range r.Recommendations {
		line := fmt.Sprintf("%2d. %s", i+1, rec.Title)
		if rec.Score != nil {
			line += fmt.Sprintf(" (score %.1f)", *rec.Score)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
