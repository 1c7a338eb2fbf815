package readme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/git"
	"github.com/readmegen/cli/internal/github"
	"github.com/readmegen/cli/internal/render"
	"github.com/readmegen/cli/internal/repo"
	"github.com/readmegen/cli/internal/testutil"
)

type fakeRemote struct {
	repo  *github.Repository
	err   error
	slugs []string
}

func (f *fakeRemote) Repository(_ context.Context, slug string) (*github.Repository, error) {
	f.slugs = append(f.slugs, slug)
	return f.repo, f.err
}

func nodeProject(t *testing.T) string {
	return testutil.WriteFiles(t, "widgets", map[string]string{
		"package.json": `{"name": "widgets", "description": "Local description", "license": "ISC",
  "scripts": {"test": "jest"}, "dependencies": {"express": "^4.0.0"}}`,
		"src/index.js": "console.log('hi')\n",
	})
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
}

func noGit(string) (*git.Info, error) { return nil, git.ErrNotRepository }

func originGit(remote string) repo.GitInspector {
	return func(string) (*git.Info, error) {
		return &git.Info{Branch: "main", Commit: "abc1234", Remote: remote}, nil
	}
}

func TestGenerate_Local(t *testing.T) {
	dir := nodeProject(t)
	g := NewGenerator(nil)
	g.Git = noGit

	res, err := g.Generate(context.Background(), Options{
		RepoPath: dir,
		Tidy:     true,
		Now:      fixedClock,
	})
	require.NoError(t, err)

	assert.Equal(t, "builtin:default", res.Template.Name)
	assert.Empty(t, res.Remote)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "widgets", res.Data["repo_name"])
	assert.Contains(t, res.Content, "# widgets")
	assert.Contains(t, res.Content, "Local description")
	assert.Contains(t, res.Content, "2024-03-09")
	assert.NotContains(t, res.Content, "\n\n\n")
	assert.True(t, strings.HasSuffix(res.Content, "\n"))
	assert.False(t, strings.HasSuffix(res.Content, "\n\n"))

	require.NotEmpty(t, res.Sections)
	assert.Equal(t, 1, res.Sections[0].Level)
	assert.Equal(t, "widgets", res.Sections[0].Title)
}

func TestGenerate_CustomTemplateAndPolicies(t *testing.T) {
	dir := nodeProject(t)
	tmpl := filepath.Join(t.TempDir(), "t.md")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{repo_name}}: {{scripts}} ({{current_date}})\n"), 0o644))

	g := NewGenerator(nil)
	g.Git = noGit
	res, err := g.Generate(context.Background(), Options{
		RepoPath:     dir,
		TemplateRef:  tmpl,
		DateFormat:   "02/01/2006",
		ListPolicies: map[string]render.ListPolicy{"scripts": render.PolicyComma},
		Now:          fixedClock,
	})
	require.NoError(t, err)
	assert.Equal(t, "widgets: `npm run test`: jest (09/03/2024)\n", res.Content)
	assert.Equal(t, tmpl, res.Template.Name)
}

func TestGenerate_TemplateFallback(t *testing.T) {
	g := NewGenerator(nil)
	g.Git = noGit
	res, err := g.Generate(context.Background(), Options{
		RepoPath:    nodeProject(t),
		TemplateRef: filepath.Join(t.TempDir(), "missing.md"),
	})
	require.NoError(t, err)
	assert.True(t, res.Template.Fallback)
	assert.Equal(t, "builtin:default", res.Template.Name)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "using the default template")
}

func TestGenerate_TemplateSyntaxError(t *testing.T) {
	tmpl := filepath.Join(t.TempDir(), "broken.md")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{#features}}never closed"), 0o644))

	g := NewGenerator(nil)
	g.Git = noGit
	_, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), TemplateRef: tmpl})
	require.Error(t, err)
	assert.True(t, errors.Is(err, render.ErrSyntax))
}

func TestGenerate_RemoteMerge(t *testing.T) {
	remote := &fakeRemote{repo: &github.Repository{
		FullName:    "acme/widgets",
		Description: "Remote description",
		HTMLURL:     "https://github.com/acme/widgets",
		Stars:       7,
		License:     &github.License{SPDXID: "MIT", Name: "MIT License"},
	}}
	g := NewGenerator(remote)
	g.Git = originGit("git@github.com:acme/widgets.git")

	res, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: AutoRemote})
	require.NoError(t, err)

	assert.Equal(t, []string{"acme/widgets"}, remote.slugs)
	assert.Equal(t, "acme/widgets", res.Remote)
	assert.Equal(t, "Remote description", res.Data["description"])
	assert.Equal(t, "MIT", res.Data["license"])
	assert.Equal(t, 7, res.Data["stars"])
	// Falsy remote values never overwrite local ones.
	assert.Equal(t, "widgets", res.Data["repo_name"])
	assert.Contains(t, res.Content, "Remote description")
}

func TestGenerate_RemoteFailure(t *testing.T) {
	failure := oerrors.NewConnectivityError("GitHub API unreachable", nil, "")

	t.Run("warns by default", func(t *testing.T) {
		g := NewGenerator(&fakeRemote{err: failure})
		g.Git = noGit
		res, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: "acme/widgets"})
		require.NoError(t, err)
		assert.Empty(t, res.Remote)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "acme/widgets")
		assert.Equal(t, "Local description", res.Data["description"])
	})

	t.Run("fatal when strict", func(t *testing.T) {
		g := NewGenerator(&fakeRemote{err: failure})
		g.Git = noGit
		_, err := g.Generate(context.Background(), Options{
			RepoPath: nodeProject(t), GitHubRepo: "acme/widgets", StrictRemote: true,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrConnectivity))
	})

	t.Run("unexpected errors are fatal", func(t *testing.T) {
		g := NewGenerator(&fakeRemote{err: errors.New("boom")})
		g.Git = noGit
		_, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: "acme/widgets"})
		require.Error(t, err)
	})
}

func TestGenerate_InvalidSlug(t *testing.T) {
	remote := &fakeRemote{}
	g := NewGenerator(remote)
	g.Git = noGit
	_, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: "not a slug"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Empty(t, remote.slugs)
}

func TestGenerate_AutoWithoutGitHubRemote(t *testing.T) {
	remote := &fakeRemote{}
	g := NewGenerator(remote)
	g.Git = originGit("https://gitlab.com/acme/widgets.git")

	res, err := g.Generate(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: AutoRemote})
	require.NoError(t, err)
	assert.Empty(t, remote.slugs)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no GitHub origin remote")
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGenerator(nil)
	g.Git = noGit
	_, err := g.Generate(ctx, Options{RepoPath: nodeProject(t)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "", firstLine(nil))
	assert.Equal(t, "one", firstLine(errors.New("one\ntwo")))
	err := oerrors.NewNotFoundError("template file not found", "x.md", "hint")
	assert.Equal(t, "template file not found", firstLine(err))
}

func TestCollect(t *testing.T) {
	remote := &fakeRemote{repo: &github.Repository{FullName: "acme/widgets", Stars: 3}}
	g := NewGenerator(remote)
	g.Git = originGit("https://github.com/acme/widgets")

	facts, err := g.Collect(context.Background(), Options{RepoPath: nodeProject(t), GitHubRepo: AutoRemote})
	require.NoError(t, err)
	require.NotNil(t, facts.Info)
	assert.Equal(t, "JavaScript", facts.Info.Language)
	assert.Equal(t, "acme/widgets", facts.Remote)
	assert.Equal(t, 3, facts.Data["stars"])
	assert.Empty(t, facts.Warnings)

	gitInfo, ok := facts.Data["git_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "main", gitInfo["branch"])
}

func TestCollect_ExcludesOutputFile(t *testing.T) {
	dir := nodeProject(t)
	testutil.WriteFile(t, dir, "README.md", "# widgets\n")
	g := NewGenerator(nil)
	g.Git = noGit

	facts, err := g.Collect(context.Background(), Options{RepoPath: dir})
	require.NoError(t, err)
	assert.Contains(t, facts.Info.Structure, "README.md")

	facts, err = g.Collect(context.Background(), Options{RepoPath: dir, OutputPath: "README.md"})
	require.NoError(t, err)
	assert.NotContains(t, facts.Info.Structure, "README.md")
	assert.Contains(t, facts.Info.Structure, "package.json")
}

func TestExcludedPaths(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{"none", "", nil},
		{"relative", "README.md", []string{"README.md"}},
		{"nested", filepath.Join("docs", "README.md"), []string{"docs/README.md"}},
		{"absolute inside", filepath.Join(root, "README.md"), []string{"README.md"}},
		{"outside", filepath.Join(filepath.Dir(root), "README.md"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excludedPaths(Options{RepoPath: root, OutputPath: tt.output}))
		})
	}
}
