package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/config"
	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/github"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/readme"
	"github.com/readmegen/cli/internal/version"
)

// previewLimit is the number of characters of the generated README shown
// after writing.
const previewLimit = 500

// generateOptions holds the flags for the generate command.
type generateOptions struct {
	repoPath    string
	outputPath  string
	template    string
	force       bool
	dryRun      bool
	diff        bool
	noPreview   bool
	noTidy      bool
	remoteFlags RemoteFlags

	// Test hooks.
	confirm Confirmer
	now     func() time.Time
	remote  readme.RemoteFetcher
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(cfg *GlobalConfig) *cobra.Command {
	return newGenerateCmd(cfg, &generateOptions{})
}

func newGenerateCmd(cfg *GlobalConfig, opts *generateOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a README for a repository",
		Long: `Analyze a repository and render its README from a template.

The repository is scanned for languages, package manifests, scripts, license
and git metadata. With --github-repo, description, stars, topics and badges
are fetched from the GitHub API and merged over the local results.

An existing output file is only replaced after confirmation, or with --force.

Examples:
  # Generate README.md in the current directory
  readmegen generate

  # Use a custom template and GitHub metadata derived from the origin remote
  readmegen generate -r ./widgets -t docs/README.tmpl -g auto

  # Show what would change without writing
  readmegen generate --diff --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runGenerate(c.Context(), c.OutOrStdout(), cfg, opts)
		},
	}

	c.Flags().StringVarP(&opts.repoPath, "repo-path", "r", ".",
		"Path to the repository")
	c.Flags().StringVarP(&opts.outputPath, "output-path", "o", "",
		"Output file, relative to the repository (default: README.md, env: READMEGEN_OUTPUT)")
	c.Flags().StringVarP(&opts.template, "template", "t", "",
		"Template file or built-in name (default: builtin:default, env: READMEGEN_TEMPLATE)")
	c.Flags().BoolVarP(&opts.force, "force", "f", false,
		"Overwrite an existing output file without asking")
	c.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Print the README instead of writing it")
	c.Flags().BoolVar(&opts.diff, "diff", false,
		"Show a diff against the existing output file")
	c.Flags().BoolVar(&opts.noPreview, "no-preview", false,
		"Do not print the outline and preview after writing")
	c.Flags().BoolVar(&opts.noTidy, "no-tidy", false,
		"Keep blank lines exactly as the template renders them")
	opts.remoteFlags.AddTo(c)

	return c
}

func runGenerate(ctx context.Context, w io.Writer, cfg *GlobalConfig, opts *generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repoPath, err := resolveRepoPath(opts.repoPath)
	if err != nil {
		return exitWith(err)
	}

	settings, err := resolveSettings(cfg, config.Flags{Template: opts.template, Output: opts.outputPath})
	if err != nil {
		return exitWith(err)
	}

	outputPath := settings.Output.Value
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(repoPath, outputPath)
	}

	writing := !opts.dryRun
	if writing && !opts.force {
		if err := confirmOverwrite(ctx, opts.confirm, outputPath); err != nil {
			return exitWith(err)
		}
	}

	remote := opts.remote
	if remote == nil {
		remote = newRemote(settings)
	}

	gen := readme.NewGenerator(remote)
	result, err := gen.Generate(ctx, opts.remoteFlags.Options(readme.Options{
		RepoPath:     repoPath,
		OutputPath:   outputPath,
		TemplateRef:  settings.Template.Value,
		DateFormat:   settings.DateFormat.Value,
		ListPolicies: settings.ListPolicies,
		Tidy:         settings.Tidy && !opts.noTidy,
		Now:          opts.now,
		Spinner:      true,
	}))
	if err != nil {
		return exitWith(err)
	}
	output.Debug("generated README",
		"template", result.Template.Name,
		"sections", len(result.Sections),
		"remote", result.Remote,
	)

	styles := output.StylesFor(output.IsTTY())

	change, err := readme.Plan(outputPath, result.Content)
	if err != nil {
		return exitWith(err)
	}

	if opts.diff {
		fmt.Fprint(w, output.ColorizeDiff(change.Diff, styles))
		fmt.Fprintln(w, styles.Muted.Render(output.DiffSummary(change.Diff)))
	}

	if !writing {
		if !opts.diff {
			fmt.Fprint(w, result.Content)
		}
		return nil
	}

	if change.Status != output.StatusUnchanged {
		if err := readme.Write(outputPath, result.Content); err != nil {
			return NewExitError(err, ExitGeneralError)
		}
	}

	fmt.Fprintln(w, output.FormatFileLine(displayPath(outputPath), change.Status))
	fmt.Fprintln(w, output.FormatCheckmark("README generated from "+result.Template.Name))

	if !opts.noPreview {
		fmt.Fprintln(w)
		fmt.Fprint(w, readme.Outline(filepath.Base(outputPath), result.Sections, styles))
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Bold.Render("Preview"))
		fmt.Fprintln(w, styles.Muted.Render(strings.Repeat("─", 50)))
		fmt.Fprintln(w, preview(result.Content, previewLimit))
	}
	return nil
}

// newRemote builds the GitHub client from resolved settings.
func newRemote(settings *config.Settings) *github.Client {
	return github.NewClient(
		github.WithBaseURL(settings.GitHubAPIURL.Value),
		github.WithToken(settings.GitHubToken),
		github.WithTimeout(settings.GitHubTimeout),
		github.WithUserAgent(version.UserAgent()),
	)
}

// resolveRepoPath returns the absolute repository path, failing when it does
// not exist or is not a directory.
func resolveRepoPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", oerrors.NewNotFoundError("repository path does not exist", abs,
			"Pass the repository directory with --repo-path.")
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", abs, err)
	case !info.IsDir():
		return "", oerrors.NewValidationError("repository path is not a directory", abs, "repo-path",
			"Pass the repository directory with --repo-path.")
	}
	return abs, nil
}

// resolveSettings validates the loaded configuration against the schema and
// applies flag > env > config > default precedence.
func resolveSettings(cfg *GlobalConfig, flags config.Flags) (*config.Settings, error) {
	var loaded *config.Config
	if cfg != nil {
		loaded = cfg.Config
	}
	if loaded == nil {
		loaded = &config.Config{}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(loaded); err != nil {
		return nil, configError(cfg, err)
	}

	settings, err := config.ResolveSettings(loaded, flags)
	if err != nil {
		return nil, configError(cfg, err)
	}
	return settings, nil
}

func configError(cfg *GlobalConfig, err error) error {
	location := ""
	if cfg != nil {
		location = cfg.ConfigPath.Value
	}
	return &oerrors.DetailError{
		Type:     "validation failed",
		Message:  "invalid configuration: " + err.Error(),
		Location: location,
		Hint:     "Run 'readmegen config vet' for details.",
		Cause:    oerrors.ErrValidation,
	}
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal to ask on it fails with a hint to use --force.
func confirmOverwrite(ctx context.Context, confirm Confirmer, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if confirm == nil {
		confirm = defaultConfirmer()
	}
	if confirm == nil {
		return oerrors.NewValidationError("output file already exists", path, "output-path",
			"Use --force to overwrite it, or --dry-run to print the README instead.")
	}

	ok, err := confirm.Confirm(ctx, fmt.Sprintf("%s already exists. Overwrite?", displayPath(path)), false)
	if err != nil {
		return err
	}
	if !ok {
		return oerrors.NewCancelledError("overwrite declined", path)
	}
	return nil
}

// preview returns the first limit characters of s, marking truncation.
func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
