// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cinemalens configuration",
	Long: "Manage cinemalens configuration.\n\n" +
		"The config command allows you to create, view, edit, validate and reset the " +
		"cinemalens configuration. Configuration is stored in a YAML file located at " +
		"~/.config/cinemalens/config.yaml by default. Every setting can also be given " +
		"as a CINEMALENS_ environment variable, e.g. CINEMALENS_GRAPH_BACKEND=neo4j.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.EditCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
}
