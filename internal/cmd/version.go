package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show readmegen version information.

Displays:
  - readmegen version, commit, and build date
  - Go version and the CUE SDK used for config validation`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}
