package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/cinemalens/internal/cmdutil"
	"github.com/leefowlercu/cinemalens/internal/version"
)

var versionOutput string

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, build date and Go version " +
		"of the current cinemalens binary. This information is useful " +
		"for troubleshooting and verifying the installed version.",
	Example: `  # Display version information
  cinemalens version

  # As JSON
  cinemalens version --output json`,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func init() {
	addVersionFlags(VersionCmd)
}

func addVersionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&versionOutput, "output", "o", cmdutil.FormatText, "Output format (text, json, yaml)")
}

func validateVersion(cmd *cobra.Command, args []string) error {
	if err := cmdutil.ValidateFormat(versionOutput); err != nil {
		return err
	}
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionOutput != cmdutil.FormatText {
		return cmdutil.WriteStructured(cmd.OutOrStdout(), versionOutput, info)
	}
	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return nil
}
