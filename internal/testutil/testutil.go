// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leefowlercu/cinemalens/internal/config"
)

// TestEnv provides an isolated test environment with its own config directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
}

// NewTestEnv creates an isolated test environment.
// Paths are overridden through environment variables so that nothing touches
// the real home directory. Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	configDir := filepath.Join(t.TempDir(), "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	t.Setenv("CINEMALENS_CONFIG_DIR", configDir)
	t.Setenv("CINEMALENS_LOG_FILE", filepath.Join(configDir, "cinemalens.log"))
	t.Setenv("CINEMALENS_CACHE_DIR", filepath.Join(configDir, "cache"))
	t.Setenv("CINEMALENS_CACHE_BACKEND", "file")

	config.Reset()
	if err := config.Init(); err != nil {
		t.Fatalf("failed to initialize test config: %v", err)
	}

	t.Cleanup(func() {
		config.Reset()
	})

	return &TestEnv{
		t:         t,
		ConfigDir: configDir,
	}
}

// ConfigPath returns where the config file for this environment lives.
func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.ConfigDir, "config.yaml")
}

// WriteConfig writes a config file into the environment and reloads it.
func (e *TestEnv) WriteConfig(content string) string {
	e.t.Helper()

	path := e.CreateTestFile(e.ConfigDir, "config.yaml", content)
	config.Reset()
	if err := config.Init(); err != nil {
		e.t.Fatalf("failed to reload test config: %v", err)
	}
	return path
}

// CreateTestDir creates a test directory within the test environment's temp space.
// Returns the absolute path to the created directory.
func (e *TestEnv) CreateTestDir(name string) string {
	e.t.Helper()

	testDataDir := filepath.Join(e.t.TempDir(), "testdata", name)
	if err := os.MkdirAll(testDataDir, 0755); err != nil {
		e.t.Fatalf("failed to create test dir %s: %v", name, err)
	}
	return testDataDir
}

// CreateTestFile creates a test file with the given content.
// Returns the absolute path to the created file.
func (e *TestEnv) CreateTestFile(dir, name, content string) string {
	e.t.Helper()

	filePath := filepath.Join(dir, name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to create test file %s: %v", filePath, err)
	}
	return filePath
}
