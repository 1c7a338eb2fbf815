package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readmegen/cli/internal/testutil"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "readmegen", root.Use)

	for _, flag := range []string{"config", "verbose", "timestamps", "env-file"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "inspect", "template", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestGenerateFlags(t *testing.T) {
	c := NewGenerateCmd(newGlobals())
	for flag, short := range map[string]string{
		"repo-path":   "r",
		"output-path": "o",
		"template":    "t",
		"github-repo": "g",
		"force":       "f",
	} {
		f := c.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, short, f.Shorthand, flag)
	}
	assert.Equal(t, ".", c.Flags().Lookup("repo-path").DefValue)
	for _, flag := range []string{"dry-run", "diff", "strict-remote", "no-preview", "no-tidy"} {
		assert.NotNil(t, c.Flags().Lookup(flag), flag)
	}
}

func TestRoot_DotEnv(t *testing.T) {
	testutil.IsolateHome(t)
	dir := t.TempDir()
	config := testutil.WriteFile(t, dir, "from-env.yaml", "output: x.md\n")
	envFile := testutil.WriteFile(t, dir, ".env", "READMEGEN_CONFIG="+config+"\n")

	out, err := run(t, NewRootCmd(), "--env-file", envFile, "config", "vet")
	require.NoError(t, err)
	assert.Contains(t, out, "from-env.yaml")
}

func TestRoot_BrokenConfigStillRuns(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteFile(t, t.TempDir(), "broken.yaml", "output: [unterminated\n")

	out, err := runRoot(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "readmegen version")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, NewVersionCmd(nil))
	require.NoError(t, err)
	assert.Contains(t, out, "readmegen version")
	assert.Contains(t, out, "CUE SDK")
}

func TestRemoteFlags(t *testing.T) {
	c := NewInspectCmd(newGlobals())
	require.NoError(t, c.ParseFlags([]string{"-g", "auto", "--strict-remote"}))

	f := c.Flags().Lookup("github-repo")
	require.NotNil(t, f)
	assert.Equal(t, "auto", f.Value.String())
	assert.Equal(t, "true", c.Flags().Lookup("strict-remote").Value.String())
}
