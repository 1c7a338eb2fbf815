package cmd

import (
	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the readmegen CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigShowCmd(cfg))

	return c
}

// configPath returns the resolved config file path, falling back to the
// default location when globals were not initialized.
func configPath(cfg *GlobalConfig) (string, error) {
	if cfg != nil && cfg.ConfigPath.Value != "" {
		return config.ExpandPath(cfg.ConfigPath.Value)
	}
	path, err := config.GetConfigFile()
	if err != nil {
		return "", err
	}
	return config.ExpandPath(path)
}
