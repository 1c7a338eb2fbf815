// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/version"
)

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE. It is
// populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration file merged with READMEGEN_* env
	// overrides. Never nil after initialization.
	Config *config.Config

	// ConfigPath is the resolved --config path and where it came from.
	ConfigPath config.ResolvedValue

	// Verbose enables debug logging.
	Verbose bool

	configFlag     string
	envFileFlag    string
	timestampsFlag bool
}

// NewRootCmd creates the root command for the readmegen CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "readmegen",
		Short: "Generate README files from repository analysis",
		Long: `readmegen inspects a repository (languages, manifests, scripts, license,
git metadata and optionally GitHub) and renders a README from a template.

Templates use {{key}} placeholders and {{#key}}...{{/key}} conditional blocks.
Run 'readmegen template show' to see the default template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.configFlag, "config", "c", "",
		"Path to config file (env: READMEGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.timestampsFlag, "timestamps", false,
		"Show timestamps in log output")
	rootCmd.PersistentFlags().StringVar(&cfg.envFileFlag, "env-file", ".env",
		"Load environment variables from this file if it exists")

	rootCmd.AddCommand(NewGenerateCmd(cfg))
	rootCmd.AddCommand(NewInspectCmd(cfg))
	rootCmd.AddCommand(NewTemplateCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the environment file and configuration, then sets
// up logging. Config problems are logged rather than returned so commands
// such as 'config init' keep working with a broken file.
func initializeGlobals(c *cobra.Command, cfg *GlobalConfig) error {
	if cfg.envFileFlag != "" {
		loaded, err := config.LoadDotEnv(cfg.envFileFlag)
		if err != nil {
			output.Warn("could not load env file", "path", cfg.envFileFlag, "error", err)
		} else if loaded {
			output.Debug("loaded env file", "path", cfg.envFileFlag)
		}
	}

	pathValue, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: cfg.configFlag,
	})
	if err != nil {
		output.Debug("could not resolve config path", "error", err)
	}
	cfg.ConfigPath = pathValue

	loaded, err := config.NewLoader().Load(pathValue.Value)
	if err != nil {
		output.Warn("ignoring configuration file", "path", pathValue.Value, "error", err)
		loaded = &config.Config{}
	}
	cfg.Config = loaded

	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.timestampsFlag)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if cfg.Verbose {
		info := version.GetInfo()
		output.Debug("readmegen started",
			"version", info.Version,
			"config", pathValue.Value,
			"config_source", pathValue.Source,
		)
	}
	return nil
}
