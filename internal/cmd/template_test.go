package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readmegen/cli/internal/templates"
	"github.com/readmegen/cli/internal/testutil"
)

func TestTemplateShow(t *testing.T) {
	out, err := run(t, NewTemplateCmd(nil), "show")
	require.NoError(t, err)
	assert.Equal(t, templates.Default(), out)

	out, err = run(t, NewTemplateCmd(nil), "show", "minimal")
	require.NoError(t, err)
	minimal, err := templates.Content("minimal")
	require.NoError(t, err)
	assert.Equal(t, minimal, out)

	_, err = run(t, NewTemplateCmd(nil), "show", "fancy")
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
}

func TestTemplateList(t *testing.T) {
	out, err := run(t, NewTemplateCmd(nil), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "minimal")
	assert.Contains(t, out, "yes")
}

func TestTemplateInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "README.tmpl")

	out, err := run(t, NewTemplateCmd(nil), "init", dest, "--from", "minimal")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	minimal, err := templates.Content("minimal")
	require.NoError(t, err)
	assert.Equal(t, minimal, readFile(t, dest))

	_, err = run(t, NewTemplateCmd(nil), "init", dest)
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))

	_, err = run(t, NewTemplateCmd(nil), "init", dest, "--force")
	require.NoError(t, err)
	assert.Equal(t, templates.Default(), readFile(t, dest))

	_, err = run(t, NewTemplateCmd(nil), "init", dest, "--from", "fancy", "--force")
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
}

func TestTemplateVet(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid template", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "ok.md", "# {{repo_name}}\n{{#license}}{{license}}{{/license}}\n")
		out, err := run(t, NewTemplateCmd(nil), "vet", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Syntax valid")
		assert.Contains(t, out, "All keys known")
	})

	t.Run("built-in by name", func(t *testing.T) {
		out, err := run(t, NewTemplateCmd(nil), "vet", "default")
		require.NoError(t, err)
		assert.Contains(t, out, "builtin:default")
	})

	t.Run("unknown keys warn", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "typo.md", "{{repo_nmae}}\n")
		_, err := run(t, NewTemplateCmd(nil), "vet", path)
		require.NoError(t, err)

		_, err = run(t, NewTemplateCmd(nil), "vet", path, "--strict")
		require.Error(t, err)
		assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
		assert.Contains(t, err.Error(), "repo_nmae")
	})

	t.Run("syntax error", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "broken.md", "{{#a}}{{/b}}")
		_, err := run(t, NewTemplateCmd(nil), "vet", path)
		require.Error(t, err)
		assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, NewTemplateCmd(nil), "vet", filepath.Join(dir, "nope.md"))
		require.Error(t, err)
		assert.Equal(t, ExitNotFound, ExitCodeFromError(err))
	})
}
