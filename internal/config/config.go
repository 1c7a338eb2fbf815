// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/readmegen/cli/internal/render"
)

// Default values applied when neither flag, env nor config file set a value.
const (
	DefaultOutput        = "README.md"
	DefaultGitHubAPIURL  = "https://api.github.com"
	DefaultGitHubTimeout = "10s"
)

// GitHubConfig contains settings for fetching remote repository metadata.
type GitHubConfig struct {
	// Token authenticates API requests.
	// Env: READMEGEN_GITHUB_TOKEN, GITHUB_TOKEN
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// APIURL is the REST API base URL.
	// Env: READMEGEN_GITHUB_API_URL, Default: https://api.github.com
	APIURL string `json:"apiURL,omitempty" yaml:"apiURL,omitempty" mapstructure:"apiURL"`

	// Timeout bounds a metadata request, e.g. "10s".
	// Env: READMEGEN_GITHUB_TIMEOUT, Default: 10s
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// RenderConfig contains template rendering settings.
type RenderConfig struct {
	// DateFormat is the Go time layout for current_date.
	DateFormat string `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty" mapstructure:"dateFormat"`

	// Lists overrides how list values are joined per top-level key.
	// Valid values: bullets, lines, comma, inline.
	Lists map[string]string `json:"lists,omitempty" yaml:"lists,omitempty" mapstructure:"lists"`

	// Tidy collapses runs of blank lines in the rendered README.
	// Default: true.
	Tidy *bool `json:"tidy,omitempty" yaml:"tidy,omitempty" mapstructure:"tidy"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the readmegen configuration.
// Loaded from ~/.readmegen/config.yaml, validated against embedded CUE schema.
type Config struct {
	// Template is the default template path or built-in name.
	// Env: READMEGEN_TEMPLATE
	Template string `json:"template,omitempty" yaml:"template,omitempty" mapstructure:"template"`

	// Output is the README path relative to the repository.
	// Env: READMEGEN_OUTPUT, Default: README.md
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// GitHub contains remote metadata settings.
	GitHub GitHubConfig `json:"github,omitempty" yaml:"github,omitempty" mapstructure:"github"`

	// Render contains rendering settings.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty" mapstructure:"render"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `readmegen config init` to generate the initial config file.
func DefaultConfig() *Config {
	lists := make(map[string]string)
	for k, p := range render.DefaultListPolicies() {
		lists[k] = p.String()
	}

	tidy := true
	timestamps := false
	return &Config{
		Output: DefaultOutput,
		GitHub: GitHubConfig{
			APIURL:  DefaultGitHubAPIURL,
			Timeout: DefaultGitHubTimeout,
		},
		Render: RenderConfig{
			DateFormat: render.DefaultDateFormat,
			Lists:      lists,
			Tidy:       &tidy,
		},
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// ListPolicies converts the configured list overrides.
func (c *RenderConfig) ListPolicies() (map[string]render.ListPolicy, error) {
	policies := make(map[string]render.ListPolicy, len(c.Lists))
	for key, s := range c.Lists {
		p, err := render.ParseListPolicy(s)
		if err != nil {
			return nil, &ValidationError{Field: "render.lists." + key, Message: err.Error()}
		}
		policies[key] = p
	}
	return policies, nil
}

// TidyEnabled reports whether blank-line tidying is on. Unset means on.
func (c *RenderConfig) TidyEnabled() bool {
	return c.Tidy == nil || *c.Tidy
}

// ParseTimeout parses a GitHub timeout value.
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &ValidationError{Field: "github.timeout", Message: err.Error()}
	}
	if d <= 0 {
		return 0, &ValidationError{Field: "github.timeout", Message: fmt.Sprintf("must be positive, got %s", s)}
	}
	return d, nil
}
