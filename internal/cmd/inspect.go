package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/readme"
	"github.com/readmegen/cli/internal/render"
)

// inspectOptions holds the flags for the inspect command.
type inspectOptions struct {
	format      string
	remoteFlags RemoteFlags

	remote readme.RemoteFetcher
}

// NewInspectCmd creates the inspect command.
func NewInspectCmd(cfg *GlobalConfig) *cobra.Command {
	return newInspectCmd(cfg, &inspectOptions{})
}

func newInspectCmd(cfg *GlobalConfig, opts *inspectOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Print the data a README would be rendered from",
		Long: `Analyze a repository and print the template data without rendering.

Keys printed here are the ones templates can reference, e.g. {{repo_name}}
or {{#git_info.branch}}...{{/git_info.branch}}.

Examples:
  # Inspect the current directory as YAML
  readmegen inspect

  # Inspect another repository as a table, including GitHub metadata
  readmegen inspect ../widgets -o table -g auto`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runInspect(c.Context(), c.OutOrStdout(), cfg, path, opts)
		},
	}

	c.Flags().StringVarP(&opts.format, "output", "o", string(output.FormatYAML),
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))
	opts.remoteFlags.AddTo(c)

	return c
}

func runInspect(ctx context.Context, w io.Writer, cfg *GlobalConfig, path string, opts *inspectOptions) error {
	format, err := output.ParseOutputFormat(opts.format)
	if err != nil {
		return exitWith(oerrors.NewValidationError(err.Error(), "", "output",
			"Use one of: "+strings.Join(output.ValidFormats(), ", ")))
	}

	repoPath, err := resolveRepoPath(path)
	if err != nil {
		return exitWith(err)
	}

	settings, err := resolveSettings(cfg, config.Flags{})
	if err != nil {
		return exitWith(err)
	}

	remote := opts.remote
	if remote == nil {
		remote = newRemote(settings)
	}

	facts, err := readme.NewGenerator(remote).Collect(ctx, opts.remoteFlags.Options(readme.Options{
		RepoPath:   repoPath,
		OutputPath: settings.Output.Value,
		DateFormat: settings.DateFormat.Value,
		Spinner:    format == output.FormatTable,
	}))
	if err != nil {
		return exitWith(err)
	}

	if format == output.FormatTable {
		fmt.Fprintln(w, output.RenderKeyValueTable(dataRows(facts.Data)))
		return nil
	}
	return output.Encode(w, format, facts.Data)
}

// dataRows flattens template data into sorted KEY/VALUE rows, nesting maps
// as dot paths.
func dataRows(data render.Data) []output.KeyValue {
	var rows []output.KeyValue
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			switch v := m[k].(type) {
			case map[string]any:
				walk(key, v)
			case render.Data:
				walk(key, v)
			case []string:
				rows = append(rows, output.KeyValue{Key: key, Value: strings.Join(v, "\n")})
			default:
				rows = append(rows, output.KeyValue{Key: key, Value: fmt.Sprint(v)})
			}
		}
	}
	walk("", data)
	return rows
}
