// Package readme orchestrates README generation: analysis, optional remote
// metadata, template loading, rendering and tidying.
package readme

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/git"
	"github.com/readmegen/cli/internal/github"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/render"
	"github.com/readmegen/cli/internal/repo"
	"github.com/readmegen/cli/internal/templates"
)

const tracerName = "github.com/readmegen/cli/internal/readme"

// AutoRemote derives the GitHub repository from the origin remote.
const AutoRemote = "auto"

// RemoteFetcher fetches remote repository metadata.
type RemoteFetcher interface {
	Repository(ctx context.Context, slug string) (*github.Repository, error)
}

// Options controls a single generation run.
type Options struct {
	// RepoPath is the repository directory.
	RepoPath string

	// OutputPath is where the README will be written, absolute or relative
	// to RepoPath. It is left out of the analysis so a regenerated README
	// does not list itself.
	OutputPath string

	// TemplateRef is a template file path or built-in name. Empty selects the
	// default template.
	TemplateRef string

	// GitHubRepo is "owner/repo", AutoRemote, or empty to skip remote metadata.
	GitHubRepo string

	// StrictRemote makes remote fetch failures fatal instead of warnings.
	StrictRemote bool

	// DateFormat is the layout for current_date and git_info.last_commit.
	DateFormat string

	// ListPolicies override list joining per key.
	ListPolicies map[string]render.ListPolicy

	// Tidy collapses runs of blank lines in the output.
	Tidy bool

	// Now is the clock for current_date. Defaults to time.Now.
	Now func() time.Time

	// Spinner shows a progress spinner on terminals.
	Spinner bool
}

// Result is the outcome of Generate.
type Result struct {
	// Content is the rendered README.
	Content string

	// Data is the merged template data.
	Data render.Data

	// Template is the template source that was rendered.
	Template templates.Source

	// Sections are the headings of Content in document order.
	Sections []Section

	// Remote is the GitHub repository whose metadata was merged, if any.
	Remote string

	// Warnings are non-fatal problems encountered during the run.
	Warnings []string
}

// Generator produces READMEs.
type Generator struct {
	// Remote fetches GitHub metadata. Nil disables remote fetching.
	Remote RemoteFetcher

	// Git overrides git inspection, mainly for tests.
	Git repo.GitInspector

	tracer trace.Tracer
}

// NewGenerator creates a Generator using the global tracer provider.
func NewGenerator(remote RemoteFetcher) *Generator {
	return &Generator{
		Remote: remote,
		tracer: otel.Tracer(tracerName),
	}
}

func (g *Generator) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := g.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Facts is the merged template data for a repository before rendering.
type Facts struct {
	// Info is the local analysis result.
	Info *repo.Info

	// Data is Info's template data with remote metadata merged over it.
	Data render.Data

	// Remote is the GitHub repository whose metadata was merged, if any.
	Remote string

	// Warnings are non-fatal problems encountered while collecting.
	Warnings []string
}

// Collect analyzes the repository and merges optional remote metadata. It is
// the data half of Generate.
func (g *Generator) Collect(ctx context.Context, opts Options) (facts *Facts, err error) {
	ctx, span := g.startSpan(ctx, "readme.collect", attribute.String("repo.path", opts.RepoPath))
	defer func() { endSpan(span, err) }()

	info, err := g.analyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	facts = &Facts{Info: info, Data: info.Data(dateFormat(opts))}

	remoteData, slug, err := g.fetchRemote(ctx, opts, info, &facts.Warnings)
	if err != nil {
		return nil, err
	}
	if remoteData != nil {
		facts.Data.Merge(remoteData)
		facts.Remote = slug
	}
	return facts, nil
}

// Generate runs the full pipeline and returns the rendered README. It does
// not write any file.
func (g *Generator) Generate(ctx context.Context, opts Options) (result *Result, err error) {
	ctx, span := g.startSpan(ctx, "readme.generate", attribute.String("repo.path", opts.RepoPath))
	defer func() { endSpan(span, err) }()

	facts, err := g.Collect(ctx, opts)
	if err != nil {
		return nil, err
	}
	result = &Result{Data: facts.Data, Remote: facts.Remote, Warnings: facts.Warnings}

	src, tmpl, err := g.loadTemplate(ctx, opts, &result.Warnings)
	if err != nil {
		return nil, err
	}
	result.Template = src

	_, renderSpan := g.startSpan(ctx, "readme.render", attribute.String("template", src.Name))
	content := tmpl.Render(result.Data,
		render.WithNow(opts.Now),
		render.WithDateFormat(dateFormat(opts)),
		render.WithListPolicies(opts.ListPolicies),
	)
	if opts.Tidy {
		content = Tidy(content)
	}
	endSpan(renderSpan, nil)

	result.Content = content
	result.Sections = Sections(content)
	return result, nil
}

func dateFormat(opts Options) string {
	if opts.DateFormat == "" {
		return render.DefaultDateFormat
	}
	return opts.DateFormat
}

func (g *Generator) analyze(ctx context.Context, opts Options) (*repo.Info, error) {
	ctx, span := g.startSpan(ctx, "readme.analyze")

	var info *repo.Info
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var aerr error
		analyzer := &repo.Analyzer{Root: opts.RepoPath, Git: g.Git, Exclude: excludedPaths(opts)}
		info, aerr = analyzer.Analyze(ctx)
		return aerr
	}, output.WithTitle("Analyzing repository..."), output.WithSpinner(opts.Spinner))

	if err == nil {
		span.SetAttributes(
			attribute.String("repo.language", info.Language),
			attribute.Int("repo.dependencies", len(info.Dependencies)),
		)
	}
	endSpan(span, err)
	if err != nil {
		return nil, fmt.Errorf("analyzing repository: %w", err)
	}
	return info, nil
}

// excludedPaths returns the output path relative to the repository when it
// lies inside it.
func excludedPaths(opts Options) []string {
	if opts.OutputPath == "" {
		return nil
	}
	root, err := filepath.Abs(opts.RepoPath)
	if err != nil {
		return nil
	}
	out := opts.OutputPath
	if !filepath.IsAbs(out) {
		out = filepath.Join(root, out)
	}
	rel, err := filepath.Rel(root, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

// fetchRemote resolves the GitHub slug and fetches its metadata. Expected
// remote failures are downgraded to warnings unless StrictRemote is set.
func (g *Generator) fetchRemote(ctx context.Context, opts Options, info *repo.Info, warnings *[]string) (render.Data, string, error) {
	if opts.GitHubRepo == "" {
		return nil, "", nil
	}
	if opts.GitHubRepo != AutoRemote && !git.ValidSlug(opts.GitHubRepo) {
		return nil, "", oerrors.NewValidationError(
			fmt.Sprintf("invalid repository %q", opts.GitHubRepo), "", "github-repo",
			"Use the owner/repo form, e.g. octocat/hello-world, or \"auto\".")
	}
	if g.Remote == nil {
		return nil, "", nil
	}

	slug := opts.GitHubRepo
	if slug == AutoRemote {
		var remote string
		if info.Git != nil {
			remote = info.Git.Remote
		}
		s, ok := git.ParseGitHubSlug(remote)
		if !ok {
			msg := "no GitHub origin remote found; skipping remote metadata"
			output.Warn(msg, "remote", remote)
			*warnings = append(*warnings, msg)
			return nil, "", nil
		}
		slug = s
	}

	ctx, span := g.startSpan(ctx, "readme.fetch_remote", attribute.String("github.repo", slug))

	var repository *github.Repository
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var ferr error
		repository, ferr = g.Remote.Repository(ctx, slug)
		return ferr
	}, output.WithTitle("Fetching "+slug+"..."), output.WithSpinner(opts.Spinner))
	endSpan(span, err)

	if err != nil {
		if opts.StrictRemote || !github.IsRemoteFailure(err) {
			return nil, "", fmt.Errorf("fetching %s: %w", slug, err)
		}
		msg := fmt.Sprintf("remote metadata unavailable for %s", slug)
		output.Warn(msg, "error", firstLine(err))
		*warnings = append(*warnings, msg)
		return nil, "", nil
	}
	return repository.Data(), slug, nil
}

func (g *Generator) loadTemplate(ctx context.Context, opts Options, warnings *[]string) (templates.Source, *render.Template, error) {
	_, span := g.startSpan(ctx, "readme.load_template", attribute.String("template.ref", opts.TemplateRef))

	src := templates.Load(opts.TemplateRef)
	if src.Fallback {
		msg := fmt.Sprintf("template %q unavailable, using the default template", opts.TemplateRef)
		output.Warn(msg, "reason", firstLine(src.Reason))
		*warnings = append(*warnings, msg)
	}

	tmpl, err := templates.Parse(src)
	endSpan(span, err)
	if err != nil {
		return src, nil, err
	}
	output.Debug("template loaded", "name", src.Name, "keys", len(tmpl.Keys()))
	return src, tmpl, nil
}

// firstLine returns a one-line description of err, preferring the message of
// a structured DetailError over its multi-line rendering.
func firstLine(err error) string {
	if err == nil {
		return ""
	}
	var detail *oerrors.DetailError
	if errors.As(err, &detail) && detail.Message != "" {
		return detail.Message
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
