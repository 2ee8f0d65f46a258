package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix    = "CINEMALENS"
	envConfigDir = "CINEMALENS_CONFIG_DIR"
)

// Load reads and returns the typed configuration.
// It searches for configuration files in priority order:
//  1. Directory specified by CINEMALENS_CONFIG_DIR environment variable
//  2. ~/.config/cinemalens/
//  3. Current working directory (.)
//
// A missing config file is not an error; defaults and environment overrides apply.
// The path of the file used, if any, is returned alongside the config.
func Load() (*Config, string, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if envPath := os.Getenv(envConfigDir); envPath != "" {
		v.AddConfigPath(envPath)
	}
	if dir := ConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read config; %w", err)
		}
	}

	cfg, err := unmarshalConfig(v)
	if err != nil {
		return nil, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(ExpandPath(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// LoadWithDefaults returns configuration using defaults only.
func LoadWithDefaults() *Config {
	cfg := NewDefaultConfig()
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)
	return v
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigDir returns the default config directory path.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "cinemalens")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	if envPath := os.Getenv(envConfigDir); envPath != "" {
		return filepath.Join(envPath, "config.yaml")
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ExpandPath expands a leading ~ in path to the user's home directory.
// Only "~" alone or "~/..." is expanded.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
