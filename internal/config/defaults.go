package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultLogFile       = "~/.config/cinemalens/cinemalens.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28

	DefaultGraphBackend      = "falkordb"
	DefaultGraphHost         = "localhost"
	DefaultGraphPort         = 6379
	DefaultGraphName         = "movies"
	DefaultGraphURI          = "neo4j://localhost:7687"
	DefaultGraphDatabase     = "neo4j"
	DefaultGraphUsername     = "neo4j"
	DefaultGraphPasswordEnv  = "CINEMALENS_GRAPH_PASSWORD"
	DefaultGraphMaxRetries   = 3
	DefaultGraphRetryDelayMs = 1000

	DefaultBreakerEnabled             = true
	DefaultBreakerMaxRequests         = 1
	DefaultBreakerIntervalSeconds     = 60
	DefaultBreakerTimeoutSeconds      = 30
	DefaultBreakerConsecutiveFailures = 5

	DefaultExtractionProvider       = "openai"
	DefaultExtractionModel          = "gpt-4o-mini"
	DefaultExtractionRateLimit      = 60
	DefaultExtractionTimeoutSeconds = 30
	DefaultExtractionAPIKeyEnv      = "OPENAI_API_KEY"

	DefaultCacheBackend   = "file"
	DefaultCacheDir       = "~/.config/cinemalens/cache"
	DefaultCacheRedisAddr = "localhost:6379"
	DefaultCacheTTLHours  = 168
	DefaultCacheVersion   = 1
)

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      DefaultLogLevel,
			File:       DefaultLogFile,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
		Graph: GraphConfig{
			Backend:      DefaultGraphBackend,
			Host:         DefaultGraphHost,
			Port:         DefaultGraphPort,
			Name:         DefaultGraphName,
			URI:          DefaultGraphURI,
			Database:     DefaultGraphDatabase,
			Username:     DefaultGraphUsername,
			PasswordEnv:  DefaultGraphPasswordEnv,
			MaxRetries:   DefaultGraphMaxRetries,
			RetryDelayMs: DefaultGraphRetryDelayMs,
			Breaker: BreakerConfig{
				Enabled:             DefaultBreakerEnabled,
				MaxRequests:         DefaultBreakerMaxRequests,
				IntervalSeconds:     DefaultBreakerIntervalSeconds,
				TimeoutSeconds:      DefaultBreakerTimeoutSeconds,
				ConsecutiveFailures: DefaultBreakerConsecutiveFailures,
			},
		},
		Extraction: ExtractionConfig{
			Provider:       DefaultExtractionProvider,
			Model:          DefaultExtractionModel,
			RateLimit:      DefaultExtractionRateLimit,
			TimeoutSeconds: DefaultExtractionTimeoutSeconds,
			APIKeyEnv:      DefaultExtractionAPIKeyEnv,
		},
		Cache: CacheConfig{
			Backend:   DefaultCacheBackend,
			Dir:       DefaultCacheDir,
			RedisAddr: DefaultCacheRedisAddr,
			TTLHours:  DefaultCacheTTLHours,
			Version:   DefaultCacheVersion,
		},
	}
}

// setViperDefaults registers all default configuration values with a viper instance.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("log.max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age_days", DefaultLogMaxAgeDays)
	v.SetDefault("log.compress", false)

	// Graph defaults
	v.SetDefault("graph.backend", DefaultGraphBackend)
	v.SetDefault("graph.host", DefaultGraphHost)
	v.SetDefault("graph.port", DefaultGraphPort)
	v.SetDefault("graph.name", DefaultGraphName)
	v.SetDefault("graph.uri", DefaultGraphURI)
	v.SetDefault("graph.database", DefaultGraphDatabase)
	v.SetDefault("graph.ensure_indexes", false)
	v.SetDefault("graph.username", DefaultGraphUsername)
	v.SetDefault("graph.password_env", DefaultGraphPasswordEnv)
	v.SetDefault("graph.max_retries", DefaultGraphMaxRetries)
	v.SetDefault("graph.retry_delay_ms", DefaultGraphRetryDelayMs)
	v.SetDefault("graph.breaker.enabled", DefaultBreakerEnabled)
	v.SetDefault("graph.breaker.max_requests", DefaultBreakerMaxRequests)
	v.SetDefault("graph.breaker.interval_seconds", DefaultBreakerIntervalSeconds)
	v.SetDefault("graph.breaker.timeout_seconds", DefaultBreakerTimeoutSeconds)
	v.SetDefault("graph.breaker.consecutive_failures", DefaultBreakerConsecutiveFailures)

	// Extraction defaults
	v.SetDefault("extraction.provider", DefaultExtractionProvider)
	v.SetDefault("extraction.model", DefaultExtractionModel)
	v.SetDefault("extraction.rate_limit", DefaultExtractionRateLimit)
	v.SetDefault("extraction.timeout_seconds", DefaultExtractionTimeoutSeconds)
	v.SetDefault("extraction.api_key_env", DefaultExtractionAPIKeyEnv)

	// Cache defaults
	v.SetDefault("cache.backend", DefaultCacheBackend)
	v.SetDefault("cache.dir", DefaultCacheDir)
	v.SetDefault("cache.redis_addr", DefaultCacheRedisAddr)
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_password_env", "")
	v.SetDefault("cache.ttl_hours", DefaultCacheTTLHours)
	v.SetDefault("cache.version", DefaultCacheVersion)
}
