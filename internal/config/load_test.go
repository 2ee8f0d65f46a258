package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_ValidConfig_ReturnsTypedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log:
  level: debug
  file: /var/log/cinemalens.log
  max_size_mb: 5
graph:
  backend: neo4j
  uri: neo4j://graph.example.com:7687
  username: reader
  name: films
  password_env: TEST_GRAPH_PASSWORD
  max_retries: 5
  breaker:
    enabled: true
    consecutive_failures: 2
    timeout_seconds: 10
extraction:
  provider: google
  model: gemini-1.5-flash
  rate_limit: 30
  api_key_env: TEST_API_KEY
cache:
  backend: redis
  redis_addr: cache.example.com:6380
  ttl_hours: 24
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.MaxSizeMB != 5 {
		t.Errorf("Log.MaxSizeMB = %d, want 5", cfg.Log.MaxSizeMB)
	}
	if cfg.Graph.Backend != "neo4j" || cfg.Graph.URI != "neo4j://graph.example.com:7687" {
		t.Errorf("Graph = %+v", cfg.Graph)
	}
	if cfg.Graph.Name != "films" {
		t.Errorf("Graph.Name = %q, want %q", cfg.Graph.Name, "films")
	}
	if cfg.Graph.Breaker.ConsecutiveFailures != 2 {
		t.Errorf("Graph.Breaker.ConsecutiveFailures = %d, want 2", cfg.Graph.Breaker.ConsecutiveFailures)
	}
	if cfg.Extraction.Provider != "google" || cfg.Extraction.RateLimit != 30 {
		t.Errorf("Extraction = %+v", cfg.Extraction)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTLHours != 24 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}

	// Unset keys fall back to defaults
	if cfg.Graph.RetryDelayMs != DefaultGraphRetryDelayMs {
		t.Errorf("Graph.RetryDelayMs = %d, want default %d", cfg.Graph.RetryDelayMs, DefaultGraphRetryDelayMs)
	}
	if cfg.Cache.Version != DefaultCacheVersion {
		t.Errorf("Cache.Version = %d, want default %d", cfg.Cache.Version, DefaultCacheVersion)
	}
}

func TestLoadFromPath_InvalidConfig_ReturnsValidationError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "graph:\n  backend: sqlite\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	_, err := LoadFromPath(configPath)
	if err == nil {
		t.Fatal("LoadFromPath() expected error for invalid backend")
	}
	if !IsValidationError(err) {
		t.Errorf("LoadFromPath() error = %v, want validation error", err)
	}
}

func TestLoadFromPath_MissingFile_ReturnsError(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFromPath() expected error for missing file")
	}
}

func TestLoad_NoConfigFile_UsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envConfigDir, t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("Load() path = %q, want empty", path)
	}
	if cfg.Graph.Backend != DefaultGraphBackend {
		t.Errorf("Graph.Backend = %q, want %q", cfg.Graph.Backend, DefaultGraphBackend)
	}
}

func TestLoad_ConfigDirEnv_TakesPriority(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envConfigDir, dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("graph:\n  name: fromenvdir\n"), 0600); err != nil {
		t.Fatalf("failed to write test config; %v", err)
	}

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Graph.Name != "fromenvdir" {
		t.Errorf("Graph.Name = %q, want %q", cfg.Graph.Name, "fromenvdir")
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Errorf("Load() path = %q", path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envConfigDir, t.TempDir())
	t.Setenv("CINEMALENS_GRAPH_PORT", "6390")
	t.Setenv("CINEMALENS_EXTRACTION_PROVIDER", "google")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Graph.Port != 6390 {
		t.Errorf("Graph.Port = %d, want 6390", cfg.Graph.Port)
	}
	if cfg.Extraction.Provider != "google" {
		t.Errorf("Extraction.Provider = %q, want %q", cfg.Extraction.Provider, "google")
	}
}

func TestInitAndGet(t *testing.T) {
	t.Cleanup(Reset)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envConfigDir, t.TempDir())

	Reset()
	if got := Get(); got.Graph.Name != DefaultGraphName {
		t.Errorf("Get() before Init = %+v, want defaults", got.Graph)
	}

	t.Setenv("CINEMALENS_GRAPH_NAME", "initgraph")
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got := Get().Graph.Name; got != "initgraph" {
		t.Errorf("Get().Graph.Name = %q, want %q", got, "initgraph")
	}
	if FilePath() != "" {
		t.Errorf("FilePath() = %q, want empty", FilePath())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~", home},
		{"~/logs/app.log", filepath.Join(home, "logs", "app.log")},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
