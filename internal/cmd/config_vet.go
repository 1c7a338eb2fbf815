package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the readmegen configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Config matches the schema (known keys, list policies, URL and timeout formats)

The config path is resolved using precedence:
  --config flag > READMEGEN_CONFIG env > ~/.readmegen/config.yaml

Examples:
  # Validate default configuration
  readmegen config vet

  # Validate custom config path
  readmegen config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *GlobalConfig) error {
	path, err := configPath(cfg)
	if err != nil {
		return exitWith(oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path"))
	}
	output.Debug("validating config", "path", path, "source", cfg.ConfigPath.Source)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return exitWith(fmt.Errorf("checking config file: %w", err))
	}
	if !exists {
		return exitWith(oerrors.NewNotFoundError("configuration file not found", path,
			"Run 'readmegen config init' to create default configuration"))
	}

	validator, err := config.NewValidator()
	if err != nil {
		return exitWith(err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				output.Error("invalid setting", "field", e.Field, "error", e.Message)
			}
			return &ExitError{
				Err:     oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("%s: %d problem(s)", path, len(verrs))),
				Code:    ExitValidationError,
				Printed: true,
			}
		}
		return exitWith(err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatVetCheck("Configuration valid", path))
	return nil
}
