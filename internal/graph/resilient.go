package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/leefowlercu/cinemalens/internal/cypher"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("graph circuit breaker open")

// BreakerConfig configures the circuit breaker around graph reads.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval after which closed-state counts reset; 0 never resets.
	Interval time.Duration

	// Timeout spent open before probing again.
	Timeout time.Duration

	// ConsecutiveFailures that trip the breaker.
	ConsecutiveFailures uint32
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// ResilientGraph wraps a Graph with a circuit breaker so an unavailable
// store fails fast instead of stalling every caller through its retries.
type ResilientGraph struct {
	Graph
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

// NewResilientGraph wraps g.
func NewResilientGraph(g Graph, cfg BreakerConfig, logger *slog.Logger) *ResilientGraph {
	if logger == nil {
		logger = slog.Default()
	}

	r := &ResilientGraph{Graph: g, logger: logger}
	r.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "graph-" + g.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isBreakerSuccess,
	})
	return r
}

// isBreakerSuccess counts only store failures against the breaker.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrMovieNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// State returns the breaker state as a string.
func (r *ResilientGraph) State() string {
	return r.cb.State().String()
}

// Recommend implements Graph.
func (r *ResilientGraph) Recommend(ctx context.Context, q *cypher.Query) ([]Recommendation, error) {
	return execute(r, func() ([]Recommendation, error) { return r.Graph.Recommend(ctx, q) })
}

// GetMovie implements Graph.
func (r *ResilientGraph) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	return execute(r, func() (*Movie, error) { return r.Graph.GetMovie(ctx, id) })
}

// GetMoviesByIDs implements Graph.
func (r *ResilientGraph) GetMoviesByIDs(ctx context.Context, ids []int64) ([]Movie, error) {
	return execute(r, func() ([]Movie, error) { return r.Graph.GetMoviesByIDs(ctx, ids) })
}

// GetMoviesByTitles implements Graph.
func (r *ResilientGraph) GetMoviesByTitles(ctx context.Context, titles []string) ([]Movie, error) {
	return execute(r, func() ([]Movie, error) { return r.Graph.GetMoviesByTitles(ctx, titles) })
}

func execute[T any](r *ResilientGraph, fn func() (T, error)) (T, error) {
	var zero T

	v, err := r.cb.Execute(func() (any, error) { return fn() })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w; %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}
