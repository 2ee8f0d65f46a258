// Package graph executes generated recommendation queries and movie lookups
// against the movie graph store.
package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leefowlercu/cinemalens/internal/cypher"
)

var (
	// ErrNotConnected is returned when an operation runs before Start.
	ErrNotConnected = errors.New("graph not connected")

	// ErrMovieNotFound is returned when a lookup by id matches nothing.
	ErrMovieNotFound = errors.New("movie not found")
)

// Graph is the interface for movie graph reads.
type Graph interface {
	// Name returns the backend name.
	Name() string

	// Start opens and verifies the connection.
	Start(ctx context.Context) error

	// Stop closes the connection.
	Stop(ctx context.Context) error

	// IsConnected returns true if connected to the database.
	IsConnected() bool

	// Recommend executes a generated query and returns its rows in store order.
	Recommend(ctx context.Context, q *cypher.Query) ([]Recommendation, error)

	// GetMovie retrieves a movie and its connections by id.
	GetMovie(ctx context.Context, id int64) (*Movie, error)

	// GetMoviesByIDs retrieves every movie whose id is in ids.
	GetMoviesByIDs(ctx context.Context, ids []int64) ([]Movie, error)

	// GetMoviesByTitles retrieves every movie whose title exactly matches one of titles.
	GetMoviesByTitles(ctx context.Context, titles []string) ([]Movie, error)
}

// Backend names.
const (
	BackendFalkorDB = "falkordb"
	BackendNeo4j    = "neo4j"
)

// Config contains graph connection configuration.
type Config struct {
	Backend       string
	Host          string
	Port          int
	GraphName     string
	URI           string
	Database      string
	Username      string
	Password      string
	MaxRetries    int
	RetryDelay    time.Duration
	EnsureIndexes bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendFalkorDB,
		Host:       "localhost",
		Port:       6379,
		GraphName:  "movies",
		URI:        "neo4j://localhost:7687",
		Database:   "neo4j",
		Username:   "neo4j",
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// Addr returns the host:port address of a Redis-protocol backend.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type settings struct {
	config Config
	logger *slog.Logger
}

// Option configures a graph backend.
type Option func(*settings)

// WithConfig sets the configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New creates the backend named by cfg.Backend. An empty backend selects FalkorDB.
func New(cfg Config, opts ...Option) (Graph, error) {
	opts = append([]Option{WithConfig(cfg)}, opts...)

	switch cfg.Backend {
	case "", BackendFalkorDB:
		return NewFalkorDBGraph(opts...), nil
	case BackendNeo4j:
		return NewNeo4jGraph(opts...), nil
	default:
		return nil, fmt.Errorf("unknown graph backend %q", cfg.Backend)
	}
}
