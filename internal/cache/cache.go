// Package cache stores extracted entity records keyed by the query that
// produced them, so repeated requests skip the language model.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

var (
	// ErrCacheMiss is returned when an entry is not found in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrVersionMismatch is returned when the cached version doesn't match.
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrExpired is returned when an entry outlived the TTL.
	ErrExpired = errors.New("cache entry expired")
)

// Config contains configuration for an entity cache.
type Config struct {
	// Dir is the base directory for file storage.
	Dir string

	// Version of the extraction format; entries of other versions are ignored.
	Version int

	// TTL bounds entry age (0 = no expiry).
	TTL time.Duration
}

// EntityCache stores extracted entity records.
type EntityCache interface {
	Get(ctx context.Context, key string) (*entities.Entities, error)
	Set(ctx context.Context, key string, e *entities.Entities) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// entry is the stored form of a cached record.
type entry struct {
	Version  int                `json:"version"`
	CachedAt time.Time          `json:"cached_at"`
	Entities *entities.Entities `json:"entities"`
}

// check validates a decoded entry against the cache's version and TTL.
func (e *entry) check(version int, ttl time.Duration, now time.Time) error {
	if e.Version != version {
		return ErrVersionMismatch
	}
	if ttl > 0 && now.Sub(e.CachedAt) > ttl {
		return ErrExpired
	}
	if e.Entities == nil {
		return ErrCacheMiss
	}
	return nil
}

// Normalize lowercases the query and collapses whitespace.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Key returns the cache key of a query: the hex SHA-256 of its normalized form.
func Key(query string) string {
	sum := sha256.Sum256([]byte(Normalize(query)))
	return "sha256:" + hex.EncodeToString(sum[:])
}

// hashToPath converts a key to a cache file path with 2-level fan-out: xx/yy/hash.
func hashToPath(baseDir, hash, suffix string) string {
	clean := hash
	if idx := strings.Index(hash, ":"); idx != -1 {
		clean = hash[idx+1:]
	}

	if len(clean) < 4 {
		return filepath.Join(baseDir, clean+suffix)
	}
	return filepath.Join(baseDir, clean[:2], clean[2:4], clean+suffix)
}
