package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the readmegen configuration.

Creates ~/.readmegen/config.yaml (or the path given by --config or
READMEGEN_CONFIG) with every setting at its default value and a comment
describing it.

Examples:
  # Initialize configuration
  readmegen config init

  # Overwrite existing configuration
  readmegen config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(c *cobra.Command, cfg *GlobalConfig, force bool) error {
	path, err := configPath(cfg)
	if err != nil {
		return exitWith(oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory"))
	}

	if _, err := os.Stat(path); err == nil && !force {
		return exitWith(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	content, err := config.DefaultConfigYAML()
	if err != nil {
		return exitWith(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return exitWith(oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path)))
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return exitWith(oerrors.Wrap(oerrors.ErrPermission, "could not write "+path))
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatFileLine(path, output.StatusCreated))
	fmt.Fprintln(w, "Validate with: readmegen config vet")
	return nil
}
