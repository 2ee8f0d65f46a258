package config

import (
	"fmt"
	"log/slog"
	"sync"
)

var (
	mu       sync.RWMutex
	current  *Config
	filePath string
)

// Init loads the configuration and stores it for retrieval with Get.
// If no config file is found, defaults and environment overrides are used.
func Init() error {
	cfg, path, err := Load()
	if err != nil {
		return fmt.Errorf("failed to initialize config; %w", err)
	}

	mu.Lock()
	current = cfg
	filePath = path
	mu.Unlock()

	slog.Debug("config initialized", "file", path)
	return nil
}

// InitFromPath loads the configuration from an explicit file path.
func InitFromPath(path string) error {
	cfg, err := LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to initialize config; %w", err)
	}

	mu.Lock()
	current = cfg
	filePath = ExpandPath(path)
	mu.Unlock()

	slog.Debug("config initialized", "file", path)
	return nil
}

// Get returns the configuration loaded by Init, or defaults if Init has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return LoadWithDefaults()
	}
	return current
}

// FilePath returns the path of the loaded config file, or empty string if
// using defaults only.
func FilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return filePath
}

// ConfigPath returns the loaded config file path, or the default path when
// no file was loaded.
func ConfigPath() string {
	if p := FilePath(); p != "" {
		return p
	}
	return DefaultConfigPath()
}

// Reset clears the loaded configuration for testing purposes.
func Reset() {
	mu.Lock()
	current = nil
	filePath = ""
	mu.Unlock()
}
