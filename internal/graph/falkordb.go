package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/FalkorDB/falkordb-go/v2"
)

// FalkorDBGraph implements Graph using FalkorDB.
type FalkorDBGraph struct {
	reader

	mu        sync.RWMutex
	settings  settings
	db        *falkordb.FalkorDB
	graph     *falkordb.Graph
	connected bool
}

// NewFalkorDBGraph creates a new FalkorDB graph client.
func NewFalkorDBGraph(opts ...Option) *FalkorDBGraph {
	s := newSettings(opts)
	g := &FalkorDBGraph{settings: s}
	g.reader = reader{
		runner:     g,
		logger:     s.logger,
		maxRetries: s.config.MaxRetries,
		retryDelay: s.config.RetryDelay,
	}
	return g
}

// Name returns the backend name.
func (g *FalkorDBGraph) Name() string {
	return BackendFalkorDB
}

// Start connects to FalkorDB and verifies the connection.
func (g *FalkorDBGraph) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.connected {
		return nil
	}

	cfg := g.settings.config
	addr := cfg.Addr()

	db, err := falkordb.FalkorDBNew(&falkordb.ConnectionOption{
		Addr:     addr,
		Password: cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to FalkorDB at %s; %w", addr, err)
	}

	graph := db.SelectGraph(cfg.GraphName)
	if _, err := graph.ROQuery(pingQuery, nil, nil); err != nil {
		db.Conn.Close()
		return fmt.Errorf("failed to verify FalkorDB connection at %s; %w", addr, err)
	}

	g.db = db
	g.graph = graph
	g.connected = true

	if cfg.EnsureIndexes {
		ensureIndexes(g, g.settings)
	}

	g.settings.logger.Info("connected to FalkorDB",
		"host", cfg.Host,
		"port", cfg.Port,
		"graph", cfg.GraphName)

	return nil
}

// Stop closes the connection.
func (g *FalkorDBGraph) Stop(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.connected {
		return nil
	}

	err := g.db.Conn.Close()
	g.db = nil
	g.graph = nil
	g.connected = false
	g.settings.logger.Info("disconnected from FalkorDB")

	if err != nil {
		return fmt.Errorf("failed to close FalkorDB connection; %w", err)
	}
	return nil
}

// IsConnected returns true if connected to the database.
func (g *FalkorDBGraph) IsConnected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.connected
}

func (g *FalkorDBGraph) run(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	g.mu.RLock()
	graph := g.graph
	g.mu.RUnlock()

	if graph == nil {
		return nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := graph.ROQuery(query, falkorParams(params), nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for result.Next() {
		record := result.Record()
		keys := record.Keys()
		values := record.Values()

		row := make(Row, len(keys))
		for i, key := range keys {
			if i < len(values) {
				row[key] = values[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeSchema runs a schema statement; caller holds g.mu.
func (g *FalkorDBGraph) writeSchema(stmt string) error {
	_, err := g.graph.Query(stmt, nil, nil)
	return err
}

// falkorParams widens typed slices to []any, the list shape the client
// serializes into its CYPHER parameter header.
func falkorParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}

	out := make(map[string]any, len(params))
	for k, v := range params {
		switch list := v.(type) {
		case []string:
			widened := make([]any, len(list))
			for i, s := range list {
				widened[i] = s
			}
			out[k] = widened
		case []int64:
			widened := make([]any, len(list))
			for i, n := range list {
				widened[i] = n
			}
			out[k] = widened
		default:
			out[k] = v
		}
	}
	return out
}
