package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate(defaults) error = %v", err)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"graph backend", func(c *Config) { c.Graph.Backend = "sqlite" }, "graph.backend"},
		{"falkordb host", func(c *Config) { c.Graph.Host = "" }, "graph.host"},
		{"falkordb port", func(c *Config) { c.Graph.Port = 70000 }, "graph.port"},
		{"neo4j uri", func(c *Config) { c.Graph.Backend = "neo4j"; c.Graph.URI = "" }, "graph.uri"},
		{"graph name", func(c *Config) { c.Graph.Name = "" }, "graph.name"},
		{"retries", func(c *Config) { c.Graph.MaxRetries = -1 }, "graph.max_retries"},
		{"breaker failures", func(c *Config) { c.Graph.Breaker.ConsecutiveFailures = 0 }, "graph.breaker.consecutive_failures"},
		{"provider", func(c *Config) { c.Extraction.Provider = "anthropic" }, "extraction.provider"},
		{"model", func(c *Config) { c.Extraction.Model = "" }, "extraction.model"},
		{"rate limit", func(c *Config) { c.Extraction.RateLimit = 0 }, "extraction.rate_limit"},
		{"cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"cache dir", func(c *Config) { c.Cache.Dir = "" }, "cache.dir"},
		{"redis addr", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisAddr = "" }, "cache.redis_addr"},
		{"cache version", func(c *Config) { c.Cache.Version = 0 }, "cache.version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}

			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors = %v, want field %q", errs, tt.field)
			}
		})
	}
}

func TestValidate_BreakerDisabledSkipsChecks(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Graph.Breaker.Enabled = false
	cfg.Graph.Breaker.ConsecutiveFailures = 0
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	single := ValidationErrors{{Field: "a", Message: "bad"}}
	if single.Error() != "a: bad" {
		t.Errorf("Error() = %q", single.Error())
	}

	multi := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}
	if !strings.Contains(multi.Error(), "  - b: worse") {
		t.Errorf("Error() = %q", multi.Error())
	}
}
