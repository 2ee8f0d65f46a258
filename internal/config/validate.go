package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leefowlercu/cinemalens/internal/logging"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

var validGraphBackends = map[string]bool{
	"falkordb": true,
	"neo4j":    true,
}

var validExtractionProviders = map[string]bool{
	"openai": true,
	"google": true,
}

var validCacheBackends = map[string]bool{
	"file":  true,
	"redis": true,
	"none":  true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		add("log.level", "must be one of debug, info, warn, error; got %q", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB < 0 {
		add("log.max_size_mb", "must not be negative, got %d", cfg.Log.MaxSizeMB)
	}

	// Graph
	if !validGraphBackends[cfg.Graph.Backend] {
		add("graph.backend", "must be one of falkordb, neo4j; got %q", cfg.Graph.Backend)
	}
	switch cfg.Graph.Backend {
	case "falkordb":
		if cfg.Graph.Host == "" {
			add("graph.host", "must not be empty")
		}
		if cfg.Graph.Port < 1 || cfg.Graph.Port > 65535 {
			add("graph.port", "must be between 1 and 65535, got %d", cfg.Graph.Port)
		}
	case "neo4j":
		if cfg.Graph.URI == "" {
			add("graph.uri", "must not be empty")
		}
	}
	if cfg.Graph.Name == "" {
		add("graph.name", "must not be empty")
	}
	if cfg.Graph.MaxRetries < 0 {
		add("graph.max_retries", "must not be negative, got %d", cfg.Graph.MaxRetries)
	}
	if cfg.Graph.RetryDelayMs < 0 {
		add("graph.retry_delay_ms", "must not be negative, got %d", cfg.Graph.RetryDelayMs)
	}
	if cfg.Graph.Breaker.Enabled {
		if cfg.Graph.Breaker.ConsecutiveFailures < 1 {
			add("graph.breaker.consecutive_failures", "must be at least 1, got %d", cfg.Graph.Breaker.ConsecutiveFailures)
		}
		if cfg.Graph.Breaker.TimeoutSeconds < 1 {
			add("graph.breaker.timeout_seconds", "must be at least 1 second, got %d", cfg.Graph.Breaker.TimeoutSeconds)
		}
	}

	// Extraction
	if !validExtractionProviders[cfg.Extraction.Provider] {
		add("extraction.provider", "must be one of openai, google; got %q", cfg.Extraction.Provider)
	}
	if cfg.Extraction.Model == "" {
		add("extraction.model", "must not be empty")
	}
	if cfg.Extraction.RateLimit < 1 {
		add("extraction.rate_limit", "must be at least 1, got %d", cfg.Extraction.RateLimit)
	}
	if cfg.Extraction.TimeoutSeconds < 1 {
		add("extraction.timeout_seconds", "must be at least 1 second, got %d", cfg.Extraction.TimeoutSeconds)
	}

	// Cache
	if !validCacheBackends[cfg.Cache.Backend] {
		add("cache.backend", "must be one of file, redis, none; got %q", cfg.Cache.Backend)
	}
	switch cfg.Cache.Backend {
	case "file":
		if cfg.Cache.Dir == "" {
			add("cache.dir", "must not be empty")
		}
	case "redis":
		if cfg.Cache.RedisAddr == "" {
			add("cache.redis_addr", "must not be empty")
		}
	}
	if cfg.Cache.TTLHours < 0 {
		add("cache.ttl_hours", "must not be negative, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Cache.Version < 1 {
		add("cache.version", "must be at least 1, got %d", cfg.Cache.Version)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
