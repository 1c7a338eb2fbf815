package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/render"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved settings and where they come from",
		Long: `Show every setting after applying flag > environment > config file > default
precedence, together with the source that won.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			settings, err := resolveSettings(cfg, config.Flags{})
			if err != nil {
				return exitWith(err)
			}

			t := output.NewTable("KEY", "VALUE", "SOURCE")
			t.Row(cfg.ConfigPath.Key, cfg.ConfigPath.Value, string(cfg.ConfigPath.Source))
			for _, v := range []config.ResolvedValue{settings.Template, settings.Output, settings.GitHubAPIURL, settings.DateFormat} {
				t.Row(v.Key, v.Value, string(v.Source))
			}
			t.Row("github.timeout", settings.GitHubTimeout.String(), "")
			t.Row("github.token", maskToken(settings.GitHubToken), "")
			t.Row("render.tidy", fmt.Sprint(settings.Tidy), "")
			t.Row("render.lists", formatPolicies(settings.ListPolicies), "")

			fmt.Fprintln(c.OutOrStdout(), t.String())
			return nil
		},
	}
}

func maskToken(token string) string {
	switch {
	case token == "":
		return "(unset)"
	case len(token) <= 4:
		return "****"
	default:
		return token[:4] + strings.Repeat("*", 8)
	}
}

func formatPolicies(policies map[string]render.ListPolicy) string {
	if len(policies) == 0 {
		return "(defaults)"
	}
	keys := make([]string, 0, len(policies))
	for k := range policies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, policies[k]))
	}
	return strings.Join(parts, " ")
}
