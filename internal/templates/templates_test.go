package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/render"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
}

func fullData() render.Data {
	return render.Data{
		"repo_name":   "acme-widgets",
		"description": "Widgets for every occasion",
		"badges": []string{
			"![Stars](https://img.shields.io/github/stars/acme/widgets)",
			"![License](https://img.shields.io/github/license/acme/widgets)",
		},
		"features":  []string{"Docker support", "Automated testing"},
		"languages": []string{"JavaScript", "Python"},
		"dependencies": map[string]any{
			"python": []string{"requests"},
			"nodejs": []string{"express"},
		},
		"installation": []string{"npm install", "# or", "yarn install"},
		"usage":        []string{"npm start"},
		"scripts":      []string{"`npm run build`: tsc", "`make test`"},
		"structure":    []string{"docs/", "src/", "package.json"},
		"license":      "MIT",
		"author":       map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"},
	}
}

func readGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func renderBuiltin(t *testing.T, name string, data render.Data) string {
	t.Helper()
	content, err := Content(name)
	require.NoError(t, err)
	tmpl, err := render.Parse(name, content)
	require.NoError(t, err)
	return tmpl.Render(data, render.WithNow(fixedNow))
}

func TestBuiltin_Golden(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     render.Data
		golden   string
	}{
		{"default with empty data", "default", render.Data{}, "default_empty.golden"},
		{"default with full data", "default", fullData(), "default_full.golden"},
		{"minimal with full data", "minimal", fullData(), "minimal_full.golden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBuiltin(t, tt.template, tt.data)
			want := readGolden(t, tt.golden)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("rendered %s mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

func TestDefault_ExercisesDocumentedKeys(t *testing.T) {
	tmpl, err := Parse(DefaultSource())
	require.NoError(t, err)
	keys := tmpl.Keys()

	for _, k := range []string{
		"repo_name", "description", "badges", "features", "languages",
		"dependencies.python", "dependencies.nodejs", "dependencies.go", "dependencies.rust",
		"dependencies.dart", "dependencies.php", "dependencies.ruby", "installation", "usage",
		"scripts", "structure", "license", "author.name", "author.email", "current_date",
	} {
		assert.Contains(t, keys, k)
	}
}

func TestDefault_RequirementPerEcosystem(t *testing.T) {
	tests := []struct {
		ecosystem string
		want      string
	}{
		{"python", "- **Python Dependencies**: See `requirements.txt`"},
		{"nodejs", "- **Node.js Dependencies**: See `package.json`"},
		{"go", "- **Go Dependencies**: See `go.mod`"},
		{"rust", "- **Rust Dependencies**: See `Cargo.toml`"},
		{"dart", "- **Dart Dependencies**: See `pubspec.yaml`"},
		{"php", "- **PHP Dependencies**: See `composer.json`"},
		{"ruby", "- **Ruby Dependencies**: See `Gemfile`"},
	}

	for _, tt := range tests {
		t.Run(tt.ecosystem, func(t *testing.T) {
			data := render.Data{"dependencies": map[string]any{tt.ecosystem: []string{"dep"}}}
			got := renderBuiltin(t, "default", data)
			assert.Contains(t, got, tt.want+"\n")
			assert.Equal(t, 1, strings.Count(got, "Dependencies**"))
		})
	}
}

func TestDefault_FalsySuppression(t *testing.T) {
	got := renderBuiltin(t, "default", render.Data{})

	for _, header := range []string{"📜 Available Scripts", "📁 Project Structure", "📝 License", "👤 Author"} {
		assert.NotContains(t, got, header)
	}
	assert.NotContains(t, got, "```bash")
	assert.Contains(t, got, "## 🤝 Contributing")
	assert.Contains(t, got, "generated automatically on 2024-03-09")
}

func TestDefault_TruthyInclusion(t *testing.T) {
	got := renderBuiltin(t, "default", render.Data{"license": "MIT"})
	assert.Contains(t, got, "MIT")
	assert.Contains(t, got, "## 📝 License")

	empty := renderBuiltin(t, "default", render.Data{})
	assert.NotContains(t, empty, "## 📝 License")
}

func TestDefault_AuthorWithoutEmail(t *testing.T) {
	got := renderBuiltin(t, "default", render.Data{"author": map[string]any{"name": "Ada"}})
	assert.Contains(t, got, "**Ada**\n")
	assert.NotContains(t, got, "()")
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"default", "minimal"}, Names())
	assert.Len(t, List(), 2)
	assert.Equal(t, "default", GetDefault().Name)
	assert.True(t, GetDefault().Default)

	tmpl, err := Get("builtin:minimal")
	require.NoError(t, err)
	assert.Equal(t, "minimal", tmpl.Name)

	_, err = Get("fancy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid templates: default, minimal")

	assert.True(t, IsBuiltin("minimal"))
	assert.True(t, IsBuiltin("builtin:default"))
	assert.False(t, IsBuiltin("README.tmpl"))
	assert.Equal(t, "builtin:minimal", BuiltinRef("minimal"))
	assert.Equal(t, "builtin:minimal", BuiltinRef("builtin:minimal"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.md")
	require.NoError(t, os.WriteFile(custom, []byte("# {{repo_name}}\n"), 0o644))

	// A file named like a built-in takes precedence over the built-in.
	shadow := filepath.Join(dir, "minimal")
	require.NoError(t, os.WriteFile(shadow, []byte("shadow"), 0o644))

	tests := []struct {
		name         string
		ref          string
		wantName     string
		wantContent  string
		wantFallback bool
	}{
		{"empty selects default", "", "builtin:default", Default(), false},
		{"file", custom, custom, "# {{repo_name}}\n", false},
		{"bare builtin", "minimal", "builtin:minimal", "", false},
		{"prefixed builtin", "builtin:minimal", "builtin:minimal", "", false},
		{"file shadows builtin name", shadow, shadow, "shadow", false},
		{"missing file falls back", filepath.Join(dir, "nope.md"), "builtin:default", Default(), true},
		{"unknown builtin falls back", "builtin:fancy", "builtin:default", Default(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Load(tt.ref)
			assert.Equal(t, tt.wantName, src.Name)
			assert.Equal(t, tt.wantFallback, src.Fallback)
			if tt.wantContent != "" {
				assert.Equal(t, tt.wantContent, src.Content)
			}
			if tt.wantFallback {
				require.Error(t, src.Reason)
				assert.True(t, errors.Is(src.Reason, oerrors.ErrNotFound))
			} else {
				assert.NoError(t, src.Reason)
			}
		})
	}
}

func TestLoad_UnreadableFallsBack(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be read as a file.
	src := Load(dir)
	assert.True(t, src.Fallback)
	require.Error(t, src.Reason)
	assert.Equal(t, Default(), src.Content)
	assert.Equal(t, BuiltinRef(DefaultTemplateName), src.Name)
}

func TestWriteBuiltin(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "templates", "README.md.tmpl")

	require.NoError(t, WriteBuiltin("default", dest, false))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, Default(), string(data))

	err = WriteBuiltin("default", dest, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteBuiltin("minimal", dest, true))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# {{repo_name}}"))
	assert.NotContains(t, string(data), "Contributing")

	err = WriteBuiltin("fancy", filepath.Join(dir, "x"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestVet(t *testing.T) {
	res, err := Vet(Source{Name: "t", Content: "{{repo_name}} {{autor.name}} {{#git_info.branch}}x{{/git_info.branch}}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"autor.name", "git_info.branch", "repo_name"}, res.Keys)
	assert.Equal(t, []string{"autor.name"}, res.Unknown)

	_, err = Vet(Source{Name: "broken.md", Content: "{{#a}}"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, render.ErrSyntax))

	res, err = Vet(DefaultSource())
	require.NoError(t, err)
	assert.Empty(t, res.Unknown)
	assert.Contains(t, KnownKeys(), "current_date")
}
