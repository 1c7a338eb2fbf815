package config

import (
	"os"
	"time"

	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/render"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value with its provenance.
type ResolvedValue struct {
	// Key is the config key, e.g. "github.apiURL".
	Key string
	// Value is the resolved value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveOptions describes one value's candidate sources.
type ResolveOptions struct {
	Key          string
	FlagValue    string
	EnvVars      []string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence: flag > env > config > default.
// Empty strings count as unset.
func Resolve(opts ResolveOptions) ResolvedValue {
	var envValue string
	for _, name := range opts.EnvVars {
		if v := os.Getenv(name); v != "" {
			envValue = v
			break
		}
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	result := ResolvedValue{Key: opts.Key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		// The config layer already includes env values merged by the loader.
		if c.source == SourceConfig && c.value == envValue {
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) READMEGEN_CONFIG env, (3) ~/.readmegen/config.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    opts.FlagValue,
		EnvVars:      []string{envConfig},
		DefaultValue: paths.ConfigFile,
	}), nil
}

// Flags carries the command-line values that participate in resolution.
type Flags struct {
	Template string
	Output   string
}

// Settings is the fully resolved configuration for a generate run.
type Settings struct {
	Template      ResolvedValue
	Output        ResolvedValue
	GitHubToken   string
	GitHubAPIURL  ResolvedValue
	GitHubTimeout time.Duration
	DateFormat    ResolvedValue
	ListPolicies  map[string]render.ListPolicy
	Tidy          bool
}

// ResolveSettings applies precedence to every setting and validates the
// values that need parsing.
func ResolveSettings(cfg *Config, flags Flags) (*Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	s := &Settings{
		Template: Resolve(ResolveOptions{
			Key:         "template",
			FlagValue:   flags.Template,
			EnvVars:     []string{"READMEGEN_TEMPLATE"},
			ConfigValue: cfg.Template,
		}),
		Output: Resolve(ResolveOptions{
			Key:          "output",
			FlagValue:    flags.Output,
			EnvVars:      []string{"READMEGEN_OUTPUT"},
			ConfigValue:  cfg.Output,
			DefaultValue: DefaultOutput,
		}),
		GitHubToken: cfg.GitHub.Token,
		GitHubAPIURL: Resolve(ResolveOptions{
			Key:          "github.apiURL",
			EnvVars:      []string{"READMEGEN_GITHUB_API_URL"},
			ConfigValue:  cfg.GitHub.APIURL,
			DefaultValue: DefaultGitHubAPIURL,
		}),
		DateFormat: Resolve(ResolveOptions{
			Key:          "render.dateFormat",
			EnvVars:      []string{"READMEGEN_DATE_FORMAT"},
			ConfigValue:  cfg.Render.DateFormat,
			DefaultValue: render.DefaultDateFormat,
		}),
		Tidy: cfg.Render.TidyEnabled(),
	}
	if s.GitHubToken == "" {
		s.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	timeout := Resolve(ResolveOptions{
		Key:          "github.timeout",
		EnvVars:      []string{"READMEGEN_GITHUB_TIMEOUT"},
		ConfigValue:  cfg.GitHub.Timeout,
		DefaultValue: DefaultGitHubTimeout,
	})
	d, err := ParseTimeout(timeout.Value)
	if err != nil {
		return nil, err
	}
	s.GitHubTimeout = d

	s.ListPolicies, err = cfg.Render.ListPolicies()
	if err != nil {
		return nil, err
	}

	LogResolvedValues([]ResolvedValue{s.Template, s.Output, s.GitHubAPIURL, timeout, s.DateFormat})
	return s, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
