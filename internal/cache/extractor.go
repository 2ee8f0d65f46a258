package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leefowlercu/cinemalens/internal/entities"
	"github.com/leefowlercu/cinemalens/internal/extract"
)

// CachedExtractor serves extractions from an EntityCache and fills it on miss.
// Cache failures are logged and never fail an extraction.
type CachedExtractor struct {
	extract.Extractor
	cache  EntityCache
	logger *slog.Logger
}

// NewCachedExtractor wraps e with c.
func NewCachedExtractor(e extract.Extractor, c EntityCache, logger *slog.Logger) *CachedExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedExtractor{Extractor: e, cache: c, logger: logger}
}

// Extract implements extract.Extractor. Returned records are copies, so
// callers may modify them.
func (c *CachedExtractor) Extract(ctx context.Context, query string) (*entities.Entities, error) {
	key := Key(query)

	rec, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.logger.Debug("entity cache hit", "key", key)
		return rec.Clone(), nil
	case errors.Is(err, ErrCacheMiss), errors.Is(err, ErrVersionMismatch), errors.Is(err, ErrExpired):
		c.logger.Debug("entity cache miss", "key", key, "reason", err)
	default:
		c.logger.Warn("entity cache read failed", "key", key, "error", err)
	}

	rec, err = c.Extractor.Extract(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, rec); err != nil {
		c.logger.Warn("entity cache write failed", "key", key, "error", err)
	}
	return rec.Clone(), nil
}
