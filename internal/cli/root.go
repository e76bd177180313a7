// Package cli wires the modekit commands: install, list, and show.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modekit-ai/modekit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "modekit",
	Short: "modekit: provision agent modes and rules into a project",
	Long: `modekit provisions a project directory with a selected set of agent
modes and their rule documents, merged from the bundled system catalog and
your personal overrides in ~/.modekit/custom-modes.yaml.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("modekit %s\n", version.GetVersion()))
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}
