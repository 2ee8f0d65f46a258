package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/cinemalens/internal/config"
	"github.com/leefowlercu/cinemalens/internal/cypher"
	"github.com/leefowlercu/cinemalens/internal/entities"
	"github.com/leefowlercu/cinemalens/internal/extract"
	"github.com/leefowlercu/cinemalens/internal/graph"
	"github.com/leefowlercu/cinemalens/internal/testutil"
)

type stubExtractor struct {
	record *entities.Entities
	err    error
	query  string
}

func (s *stubExtractor) Name() string    { return "stub" }
func (s *stubExtractor) Available() bool { return true }

func (s *stubExtractor) Extract(ctx context.Context, query string) (*entities.Entities, error) {
	s.query = query
	return s.record.Clone(), s.err
}

type stubGraph struct {
	recs     []graph.Recommendation
	startErr error
	query    *cypher.Query
	stopped  bool
}

func (s *stubGraph) Name() string                    { return "stub" }
func (s *stubGraph) Start(ctx context.Context) error { return s.startErr }
func (s *stubGraph) Stop(ctx context.Context) error  { s.stopped = true; return nil }
func (s *stubGraph) IsConnected() bool               { return true }

func (s *stubGraph) Recommend(ctx context.Context, q *cypher.Query) ([]graph.Recommendation, error) {
	s.query = q
	return s.recs, nil
}

func (s *stubGraph) GetMovie(ctx context.Context, id int64) (*graph.Movie, error) {
	return nil, graph.ErrMovieNotFound
}

func (s *stubGraph) GetMoviesByIDs(ctx context.Context, ids []int64) ([]graph.Movie, error) {
	return nil, nil
}

func (s *stubGraph) GetMoviesByTitles(ctx context.Context, titles []string) ([]graph.Movie, error) {
	return nil, nil
}

func setupStubs(t *testing.T, ext *stubExtractor, g *stubGraph) {
	t.Helper()
	testutil.NewTestEnv(t)

	origExtractor, origGraph := newExtractor, newGraph
	t.Cleanup(func() {
		newExtractor, newGraph = origExtractor, origGraph
	})

	newExtractor = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (extract.Extractor, func() error, error) {
		return ext, func() error { return nil }, nil
	}
	newGraph = func(cfg *config.GraphConfig, logger *slog.Logger) (graph.Graph, error) {
		return g, nil
	}
}

func score(v float64) *float64 { return &v }

func TestRecommendCmd_Similarity(t *testing.T) {
	ext := &stubExtractor{record: &entities.Entities{
		Movie:         []string{"Heat"},
		MoviesPresent: entities.Bool(false),
		ParsingReview: "crime thrillers like Heat",
	}}
	g := &stubGraph{recs: []graph.Recommendation{
		{Title: "Collateral", Score: score(4.5)},
		{Title: "Thief", Score: score(3)},
	}}
	setupStubs(t, ext, g)

	cmd := createTestCommand()
	cmd.SetArgs([]string{"something", "like", "Heat"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "something like Heat", ext.query)
	require.NotNil(t, g.query)
	assert.Equal(t, cypher.StrategySimilarity, g.query.Strategy)
	assert.True(t, g.stopped, "graph should be stopped after the run")

	output := stdout.String()
	assert.Contains(t, output, "Interpretation: crime thrillers like Heat")
	assert.Contains(t, output, "Based on: heat")
	assert.Contains(t, output, " 1. Collateral (score 4.5)")
	assert.Contains(t, output, " 2. Thief (score 3.0)")
}

func TestRecommendCmd_OverridesApplied(t *testing.T) {
	ext := &stubExtractor{record: &entities.Entities{
		Actor:     []string{"Tom Hanks"},
		Genre:     []string{"war"},
		YearStart: entities.Int(1980),
	}}
	g := &stubGraph{}
	setupStubs(t, ext, g)

	cmd := createTestCommand()
	cmd.SetArgs([]string{"Tom Hanks movies", "--min-year", "1990", "--max-year", "2005", "--genres", "Drama, Comedy"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	require.NotNil(t, g.query)

	assert.Equal(t, 1990, g.query.Params["year_start"])
	assert.Equal(t, 2005, g.query.Params["year_end"])
	assert.Equal(t, []string{"drama", "comedy"}, g.query.Params["genres"])
	assert.Contains(t, stdout.String(), "No recommendations found.")
}

func TestRecommendCmd_DryRunSkipsGraph(t *testing.T) {
	ext := &stubExtractor{record: &entities.Entities{Genre: []string{"horror"}}}
	g := &stubGraph{startErr: errors.New("must not connect")}
	setupStubs(t, ext, g)

	cmd := createTestCommand()
	cmd.SetArgs([]string{"scary movies", "--dry-run"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.Nil(t, g.query)
	assert.Contains(t, stdout.String(), "// strategy: standard_filter")
	assert.Contains(t, stdout.String(), "Entities: ")
}

func TestRecommendCmd_JSONOutput(t *testing.T) {
	ext := &stubExtractor{record: &entities.Entities{Movie: []string{"Alien"}, Genre: []string{"horror"}}}
	g := &stubGraph{recs: []graph.Recommendation{{Title: "The Thing", Score: score(3.5)}}}
	setupStubs(t, ext, g)

	cmd := createTestCommand()
	cmd.SetArgs([]string{"horror like Alien", "--output", "json"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())

	var result Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, "horror like Alien", result.Request)
	assert.Equal(t, "combined_similarity_genre", result.Query.Strategy)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "The Thing", result.Recommendations[0].Title)
}

func TestRecommendCmd_Errors(t *testing.T) {
	t.Run("extraction failure", func(t *testing.T) {
		setupStubs(t, &stubExtractor{err: extract.ErrMalformedResponse}, &stubGraph{})

		cmd := createTestCommand()
		cmd.SetArgs([]string{"anything"})
		cmd.SetOut(new(bytes.Buffer))

		err := cmd.Execute()
		assert.ErrorIs(t, err, extract.ErrMalformedResponse)
	})

	t.Run("graph unreachable", func(t *testing.T) {
		setupStubs(t, &stubExtractor{record: &entities.Entities{}}, &stubGraph{startErr: graph.ErrNotConnected})

		cmd := createTestCommand()
		cmd.SetArgs([]string{"anything"})
		cmd.SetOut(new(bytes.Buffer))

		err := cmd.Execute()
		assert.ErrorIs(t, err, graph.ErrNotConnected)
	})
}

func TestRecommendCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"blank request", []string{"  "}, "request must not be empty"},
		{"inverted years", []string{"x", "--min-year", "2000", "--max-year", "1990"}, "is after"},
		{"unknown genre", []string{"x", "--genres", "drama,space opera"}, "unknown genre"},
		{"bad output", []string{"x", "--output", "csv"}, "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupStubs(t, &stubExtractor{record: &entities.Entities{}}, &stubGraph{})

			cmd := createTestCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(new(bytes.Buffer))
			cmd.SetErr(new(bytes.Buffer))

			err := cmd.Execute()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should contain %q", err, tt.want)
		})
	}
}

func createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     RecommendCmd.Use,
		Short:   RecommendCmd.Short,
		Long:    RecommendCmd.Long,
		Example: RecommendCmd.Example,
		Args:    RecommendCmd.Args,
		PreRunE: RecommendCmd.PreRunE,
		RunE:    RecommendCmd.RunE,
	}
	addRecommendFlags(cmd)
	return cmd
}
