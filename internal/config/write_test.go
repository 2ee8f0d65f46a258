package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewDefaultConfig()
	cfg.Graph.Name = "roundtrip"
	cfg.Cache.Backend = "none"

	if err := Write(&cfg, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file perms = %o, want 0600", perm)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# cinemalens configuration") {
		t.Errorf("missing header in %q", string(data))
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Graph.Name != "roundtrip" || loaded.Cache.Backend != "none" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestResolveSecrets(t *testing.T) {
	t.Setenv("TEST_CINEMALENS_KEY", "from-env")

	ext := ExtractionConfig{APIKeyEnv: "TEST_CINEMALENS_KEY"}
	if got := ext.ResolveAPIKey(); got != "from-env" {
		t.Errorf("ResolveAPIKey() = %q", got)
	}
	inline := "inline"
	ext.APIKey = &inline
	if got := ext.ResolveAPIKey(); got != "inline" {
		t.Errorf("ResolveAPIKey() = %q, want inline value", got)
	}

	g := GraphConfig{}
	if got := g.ResolvePassword(); got != "" {
		t.Errorf("ResolvePassword() = %q, want empty", got)
	}
	g.PasswordEnv = "TEST_CINEMALENS_KEY"
	if got := g.ResolvePassword(); got != "from-env" {
		t.Errorf("ResolvePassword() = %q", got)
	}
}
