package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leefowlercu/cinemalens/internal/cypher"
)

// Row is one result record keyed by column name.
type Row map[string]any

// runner executes a read-only query against a connected backend.
type runner interface {
	run(ctx context.Context, query string, params map[string]any) ([]Row, error)
}

// reader implements the Graph read operations on top of a runner.
// Backends embed it with themselves as the runner.
type reader struct {
	runner     runner
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

// query runs q with retry. Context cancellation is never retried.
func (r *reader) query(ctx context.Context, q string, params map[string]any) ([]Row, error) {
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		var rows []Row
		rows, err = r.runner.run(ctx, q, params)
		if err == nil {
			return rows, nil
		}
		if !retryable(ctx, err) {
			return nil, err
		}

		if attempt < r.maxRetries {
			r.logger.Warn("graph query failed; retrying", "attempt", attempt+1, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("graph query failed after %d attempts; %w", r.maxRetries+1, err)
}

func retryable(ctx context.Context, err error) bool {
	switch {
	case ctx.Err() != nil:
		return false
	case errors.Is(err, ErrNotConnected), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// Recommend executes a generated query with its bound params.
func (r *reader) Recommend(ctx context.Context, q *cypher.Query) ([]Recommendation, error) {
	if q == nil {
		return nil, errors.New("nil query")
	}

	r.logger.Debug("executing recommendation query", "strategy", q.Strategy.String(), "params", len(q.Params))

	rows, err := r.query(ctx, q.String(), map[string]any(q.Params))
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s query; %w", q.Strategy, err)
	}

	return parseRecommendations(rows), nil
}

// GetMovie retrieves a movie by id.
func (r *reader) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	rows, err := r.query(ctx, movieByIDQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d; %w", id, err)
	}

	movies := parseMovies(rows)
	if len(movies) != 1 {
		return nil, fmt.Errorf("movie %d; %w", id, ErrMovieNotFound)
	}
	return &movies[0], nil
}

// GetMoviesByIDs retrieves movies by id. Unknown ids are skipped.
func (r *reader) GetMoviesByIDs(ctx context.Context, ids []int64) ([]Movie, error) {
	if len(ids) == 0 {
		return []Movie{}, nil
	}

	list := make([]any, len(ids))
	for i, id := range ids {
		list[i] = id
	}

	rows, err := r.query(ctx, moviesByIDsQuery, map[string]any{"ids": list})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies by id; %w", err)
	}
	return parseMovies(rows), nil
}

// GetMoviesByTitles retrieves movies by exact title. Unknown titles are skipped.
func (r *reader) GetMoviesByTitles(ctx context.Context, titles []string) ([]Movie, error) {
	if len(titles) == 0 {
		return []Movie{}, nil
	}

	list := make([]any, len(titles))
	for i, t := range titles {
		list[i] = t
	}

	rows, err := r.query(ctx, moviesByTitlesQuery, map[string]any{"titles": list})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies by title; %w", err)
	}
	return parseMovies(rows), nil
}
