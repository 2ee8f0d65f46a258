package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jGraph implements Graph using the Neo4j Bolt driver.
type Neo4jGraph struct {
	reader

	mu        sync.RWMutex
	settings  settings
	driver    neo4j.DriverWithContext
	connected bool
}

// NewNeo4jGraph creates a new Neo4j graph client.
func NewNeo4jGraph(opts ...Option) *Neo4jGraph {
	s := newSettings(opts)
	g := &Neo4jGraph{settings: s}
	g.reader = reader{
		runner:     g,
		logger:     s.logger,
		maxRetries: s.config.MaxRetries,
		retryDelay: s.config.RetryDelay,
	}
	return g
}

// Name returns the backend name.
func (g *Neo4jGraph) Name() string {
	return BackendNeo4j
}

// Start creates the driver and verifies connectivity.
func (g *Neo4jGraph) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.connected {
		return nil
	}

	cfg := g.settings.config
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver for %s; %w", cfg.URI, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return fmt.Errorf("failed to connect to Neo4j at %s; %w", cfg.URI, err)
	}

	g.driver = driver
	g.connected = true

	if cfg.EnsureIndexes {
		ensureIndexes(neo4jSchemaWriter{ctx: ctx, g: g}, g.settings)
	}

	g.settings.logger.Info("connected to Neo4j", "uri", cfg.URI, "database", cfg.Database)
	return nil
}

// Stop closes the driver.
func (g *Neo4jGraph) Stop(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.connected {
		return nil
	}

	err := g.driver.Close(ctx)
	g.driver = nil
	g.connected = false
	g.settings.logger.Info("disconnected from Neo4j")

	if err != nil {
		return fmt.Errorf("failed to close Neo4j driver; %w", err)
	}
	return nil
}

// IsConnected returns true if connected to the database.
func (g *Neo4jGraph) IsConnected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.connected
}

func (g *Neo4jGraph) run(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	g.mu.RLock()
	driver := g.driver
	g.mu.RUnlock()

	if driver == nil {
		return nil, ErrNotConnected
	}

	result, err := neo4j.ExecuteQuery(ctx, driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.settings.config.Database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, Row(record.AsMap()))
	}
	return rows, nil
}

// neo4jSchemaWriter runs schema statements while Start holds the lock.
type neo4jSchemaWriter struct {
	ctx context.Context
	g   *Neo4jGraph
}

func (w neo4jSchemaWriter) writeSchema(stmt string) error {
	_, err := neo4j.ExecuteQuery(w.ctx, w.g.driver, stmt, nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(w.g.settings.config.Database))
	return err
}
