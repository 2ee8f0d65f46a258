package subcommands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/config"
)

var (
	initPath  string
	initForce bool
)

// InitCmd writes a configuration file populated with defaults.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with default values",
	Long: "Create a configuration file with default values.\n\n" +
		"Writes every setting with its default value so the file can be edited by hand. " +
		"An existing file is left untouched unless --force is given.",
	Example: `  # Create ~/.config/cinemalens/config.yaml
  cinemalens config init

  # Write to a specific path, replacing any existing file
  cinemalens config init --path ./config.yaml --force`,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().StringVar(&initPath, "path", "", "Config file path (default: ~/.config/cinemalens/config.yaml)")
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	path, err := cmdutil.ResolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path; %w", err)
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s; use --force to overwrite", path)
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written: %s\n", path)
	return nil
}
