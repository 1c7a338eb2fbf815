package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readmegen/cli/internal/testutil"
)

func TestNewConfigInitCmd(t *testing.T) {
	c := NewConfigInitCmd(newGlobals())

	assert.Equal(t, "init", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotEmpty(t, c.Long)
	assert.NotNil(t, c.Flags().Lookup("force"))
}

func TestConfigInit_CreatesFile(t *testing.T) {
	home := testutil.IsolateHome(t)

	out, err := runRoot(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	dir := filepath.Join(home, ".readmegen")
	path := filepath.Join(dir, "config.yaml")
	assert.FileExists(t, path)

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())

	assert.Contains(t, readFile(t, path), "readmegen configuration")
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	testutil.IsolateHome(t)

	_, err := runRoot(t, "config", "init")
	require.NoError(t, err)

	_, err = runRoot(t, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "configuration already exists")

	_, err = runRoot(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_CustomPath(t *testing.T) {
	testutil.IsolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "readmegen.yaml")

	_, err := runRoot(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()

	t.Run("scaffolded config is valid", func(t *testing.T) {
		path := filepath.Join(dir, "scaffold.yaml")
		_, err := runRoot(t, "--config", path, "config", "init")
		require.NoError(t, err)

		out, err := runRoot(t, "--config", path, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration valid")
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := runRoot(t, "--config", filepath.Join(dir, "missing.yaml"), "config", "vet")
		require.Error(t, err)
		assert.Equal(t, ExitNotFound, ExitCodeFromError(err))
	})

	t.Run("schema violations", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "bad.yaml", "render:\n  lists:\n    features: zigzag\nbogus: 1\n")
		_, err := runRoot(t, "--config", path, "config", "vet")
		require.Error(t, err)
		assert.Equal(t, ExitValidationError, ExitCodeFromError(err))

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.True(t, exitErr.Printed)
	})

	t.Run("env var selects config", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "env.yaml", "output: docs/README.md\n")
		t.Setenv("READMEGEN_CONFIG", path)
		out, err := runRoot(t, "config", "vet")
		require.NoError(t, err)
		assert.Contains(t, out, "env.yaml")
	})
}

func TestConfigShow(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteFile(t, t.TempDir(), "config.yaml",
		"template: minimal\nrender:\n  lists:\n    features: comma\n")
	t.Setenv("READMEGEN_OUTPUT", "docs/README.md")
	t.Setenv("GITHUB_TOKEN", "ghp_secretvalue")

	out, err := runRoot(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "minimal")
	assert.Contains(t, out, "docs/README.md")
	assert.Contains(t, out, "env")
	assert.Contains(t, out, "features=comma")
	assert.Contains(t, out, "ghp_********")
	assert.NotContains(t, out, "secretvalue")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(unset)", maskToken(""))
	assert.Equal(t, "****", maskToken("abc"))
	assert.Equal(t, "ghp_********", maskToken("ghp_123456789"))
}
