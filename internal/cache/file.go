package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

const entitiesSubdir = "entities"

// FileEntityCache caches entity records as JSON files.
type FileEntityCache struct {
	config Config
	dir    string
	mu     sync.RWMutex
	now    func() time.Time
}

// NewFileEntityCache creates the cache directory and returns the cache.
func NewFileEntityCache(config Config) (*FileEntityCache, error) {
	dir := filepath.Join(config.Dir, entitiesSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory; %w", err)
	}

	return &FileEntityCache{config: config, dir: dir, now: time.Now}, nil
}

func (c *FileEntityCache) path(key string) string {
	return hashToPath(c.dir, key, fmt.Sprintf("-v%d.json", c.config.Version))
}

// Get retrieves a cached record by key.
func (c *FileEntityCache) Get(ctx context.Context, key string) (*entities.Entities, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache file; %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data; %w", err)
	}
	if err := e.check(c.config.Version, c.config.TTL, c.now()); err != nil {
		return nil, err
	}

	return e.Entities, nil
}

// Set stores a record under key.
func (c *FileEntityCache) Set(ctx context.Context, key string, rec *entities.Entities) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory; %w", err)
	}

	data, err := json.MarshalIndent(entry{
		Version:  c.config.Version,
		CachedAt: c.now().UTC(),
		Entities: rec,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry; %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file; %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (c *FileEntityCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file; %w", err)
	}
	return nil
}

// Clear removes all cached entries.
func (c *FileEntityCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("failed to clear cache; %w", err)
	}
	return os.MkdirAll(c.dir, 0755)
}

// Stats contains cache statistics.
type Stats struct {
	EntryCount int64 `json:"entry_count"`
	TotalSize  int64 `json:"total_size"`
}

// Stats walks the cache directory.
func (c *FileEntityCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stats Stats
	_ = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			stats.EntryCount++
			stats.TotalSize += info.Size()
		}
		return nil
	})
	return stats
}
