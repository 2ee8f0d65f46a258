package subcommands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/cinemalens/internal/config"
)

const redacted = "********"

var (
	showRaw bool
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the current cinemalens configuration values. By default, shows " +
		"the effective configuration with defaults and environment overrides applied, " +
		"with inline secrets redacted. Use --raw to show the config file as written.",
	Example: `  # Show effective configuration
  cinemalens config show

  # Show the config file contents
  cinemalens config show --raw`,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Show the config file as written (no defaults)")
}

func validateShow(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if showRaw {
		return showRawConfig(cmd)
	}
	return showEffectiveConfig(cmd)
}

func showRawConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	configPath := config.ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg := redact(*config.Get())

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	if path := config.FilePath(); path != "" {
		fmt.Fprintf(out, "# Config file: %s\n", path)
	} else {
		fmt.Fprintln(out, "# Config file: none (defaults and environment only)")
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// redact masks inline secrets. Env var names are left visible.
func redact(cfg config.Config) config.Config {
	mask := func(p *string) *string {
		if p == nil || *p == "" {
			return p
		}
		s := redacted
		return &s
	}
	cfg.Graph.Password = mask(cfg.Graph.Password)
	cfg.Extraction.APIKey = mask(cfg.Extraction.APIKey)
	return cfg
}
