package cmdutil

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leefowlercu/cinemalens/internal/cache"
	"github.com/leefowlercu/cinemalens/internal/config"
	"github.com/leefowlercu/cinemalens/internal/extract"
	"github.com/leefowlercu/cinemalens/internal/graph"
)

// GraphConfig converts the graph section of the application config.
func GraphConfig(cfg *config.GraphConfig) graph.Config {
	return graph.Config{
		Backend:       cfg.Backend,
		Host:          cfg.Host,
		Port:          cfg.Port,
		GraphName:     cfg.Name,
		URI:           cfg.URI,
		Database:      cfg.Database,
		Username:      cfg.Username,
		Password:      cfg.ResolvePassword(),
		MaxRetries:    cfg.MaxRetries,
		RetryDelay:    time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		EnsureIndexes: cfg.EnsureIndexes,
	}
}

// NewGraph builds the configured backend, wrapped in a circuit breaker when
// enabled. The graph is not started.
func NewGraph(cfg *config.GraphConfig, logger *slog.Logger) (graph.Graph, error) {
	g, err := graph.New(GraphConfig(cfg), graph.WithLogger(logger.With("component", "graph")))
	if err != nil {
		return nil, err
	}

	if !cfg.Breaker.Enabled {
		return g, nil
	}

	return graph.NewResilientGraph(g, graph.BreakerConfig{
		MaxRequests:         cfg.Breaker.MaxRequests,
		Interval:            time.Duration(cfg.Breaker.IntervalSeconds) * time.Second,
		Timeout:             time.Duration(cfg.Breaker.TimeoutSeconds) * time.Second,
		ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
	}, logger), nil
}

// NewRegistry registers every supported extraction provider. Only the
// configured provider receives the configured model and key.
func NewRegistry(cfg *config.ExtractionConfig) *extract.Registry {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	openaiOpts := []extract.OpenAIOption{extract.WithOpenAITimeout(timeout)}
	googleOpts := []extract.GoogleOption{extract.WithGoogleTimeout(timeout)}

	key := cfg.ResolveAPIKey()
	switch cfg.Provider {
	case "openai":
		openaiOpts = append(openaiOpts, extract.WithOpenAIModel(cfg.Model))
		if key != "" {
			openaiOpts = append(openaiOpts, extract.WithOpenAIAPIKey(key))
		}
	case "google":
		googleOpts = append(googleOpts, extract.WithGoogleModel(cfg.Model))
		if key != "" {
			googleOpts = append(googleOpts, extract.WithGoogleAPIKey(key))
		}
	}

	r := extract.NewRegistry()
	_ = r.Register(extract.NewOpenAIExtractor(openaiOpts...))
	_ = r.Register(extract.NewGoogleExtractor(googleOpts...))
	return r
}

// NewExtractor returns the configured provider behind the rate limiter and
// the entity cache. The returned close func releases the cache and provider.
func NewExtractor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (extract.Extractor, func() error, error) {
	registry := NewRegistry(&cfg.Extraction)

	provider, err := registry.Get(cfg.Extraction.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction provider %q; %w", cfg.Extraction.Provider, err)
	}
	if !provider.Available() {
		return nil, nil, fmt.Errorf("extraction provider %q has no API key; set %s; %w",
			provider.Name(), cfg.Extraction.APIKeyEnv, extract.ErrProviderUnavailable)
	}

	closers := []func() error{}
	if g, ok := provider.(*extract.GoogleExtractor); ok {
		closers = append(closers, g.Close)
	}

	var ext extract.Extractor = extract.NewRateLimited(provider, extract.NewLimiter(cfg.Extraction.RateLimit))

	entityCache, closeCache, err := NewEntityCache(ctx, &cfg.Cache)
	if err != nil {
		logger.Warn("entity cache unavailable; continuing without it", "backend", cfg.Cache.Backend, "error", err)
	} else if entityCache != nil {
		ext = cache.NewCachedExtractor(ext, entityCache, logger.With("component", "cache"))
		closers = append(closers, closeCache)
	}

	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return ext, closeAll, nil
}

// NewEntityCache opens the configured cache backend. It returns a nil cache
// for backend "none".
func NewEntityCache(ctx context.Context, cfg *config.CacheConfig) (cache.EntityCache, func() error, error) {
	cc := cache.Config{
		Version: cfg.Version,
		TTL:     time.Duration(cfg.TTLHours) * time.Hour,
	}
	noop := func() error { return nil }

	switch cfg.Backend {
	case "none":
		return nil, noop, nil
	case "redis":
		rc, err := cache.NewRedisEntityCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.ResolveRedisPassword(),
			DB:       cfg.RedisDB,
		}, cc)
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	default:
		dir, err := ResolvePath(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve cache dir; %w", err)
		}
		cc.Dir = dir
		fc, err := cache.NewFileEntityCache(cc)
		if err != nil {
			return nil, nil, err
		}
		return fc, noop, nil
	}
}
