package config

import "os"

// Config is the root configuration structure for the application.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Graph      GraphConfig      `yaml:"graph" mapstructure:"graph"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
}

// LogConfig holds log level and rotated log file settings.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// GraphConfig holds movie graph database configuration.
// EnsureIndexes creates lookup indexes on start and needs write access.
type GraphConfig struct {
	Backend       string        `yaml:"backend" mapstructure:"backend"`
	Host          string        `yaml:"host" mapstructure:"host"`
	Port          int           `yaml:"port" mapstructure:"port"`
	Name          string        `yaml:"name" mapstructure:"name"`
	URI           string        `yaml:"uri" mapstructure:"uri"`
	Database      string        `yaml:"database" mapstructure:"database"`
	Username      string        `yaml:"username" mapstructure:"username"`
	Password      *string       `yaml:"password,omitempty" mapstructure:"password"`
	PasswordEnv   string        `yaml:"password_env" mapstructure:"password_env"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelayMs  int           `yaml:"retry_delay_ms" mapstructure:"retry_delay_ms"`
	EnsureIndexes bool          `yaml:"ensure_indexes" mapstructure:"ensure_indexes"`
	Breaker       BreakerConfig `yaml:"breaker" mapstructure:"breaker"`
}

// ResolvePassword returns the password from config or falls back to environment variable.
func (c *GraphConfig) ResolvePassword() string {
	if c.Password != nil && *c.Password != "" {
		return *c.Password
	}
	if c.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(c.PasswordEnv)
}

// BreakerConfig holds circuit breaker settings for graph reads.
type BreakerConfig struct {
	Enabled             bool   `yaml:"enabled" mapstructure:"enabled"`
	MaxRequests         uint32 `yaml:"max_requests" mapstructure:"max_requests"`
	IntervalSeconds     int    `yaml:"interval_seconds" mapstructure:"interval_seconds"`
	TimeoutSeconds      int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	ConsecutiveFailures uint32 `yaml:"consecutive_failures" mapstructure:"consecutive_failures"`
}

// ExtractionConfig holds entity extraction provider configuration.
type ExtractionConfig struct {
	Provider       string  `yaml:"provider" mapstructure:"provider"`
	Model          string  `yaml:"model" mapstructure:"model"`
	RateLimit      int     `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per minute
	TimeoutSeconds int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	APIKey         *string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	APIKeyEnv      string  `yaml:"api_key_env" mapstructure:"api_key_env"`
}

// ResolveAPIKey returns the API key from config or falls back to environment variable.
func (c *ExtractionConfig) ResolveAPIKey() string {
	if c.APIKey != nil && *c.APIKey != "" {
		return *c.APIKey
	}
	return os.Getenv(c.APIKeyEnv)
}

// CacheConfig holds extraction cache configuration.
type CacheConfig struct {
	Backend          string `yaml:"backend" mapstructure:"backend"`
	Dir              string `yaml:"dir" mapstructure:"dir"`
	RedisAddr        string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisDB          int    `yaml:"redis_db" mapstructure:"redis_db"`
	RedisPasswordEnv string `yaml:"redis_password_env" mapstructure:"redis_password_env"`
	TTLHours         int    `yaml:"ttl_hours" mapstructure:"ttl_hours"` // 0 = no expiry
	Version          int    `yaml:"version" mapstructure:"version"`
}

// ResolveRedisPassword returns the Redis password from the named environment variable.
func (c *CacheConfig) ResolveRedisPassword() string {
	if c.RedisPasswordEnv == "" {
		return ""
	}
	return os.Getenv(c.RedisPasswordEnv)
}
