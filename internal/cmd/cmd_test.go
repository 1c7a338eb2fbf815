package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/readmegen/cli/internal/config"
	"github.com/readmegen/cli/internal/github"
	"github.com/readmegen/cli/internal/testutil"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
}

// nodeRepo writes a small Node.js project and returns its directory.
func nodeRepo(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, "widgets", map[string]string{
		"package.json": `{"name": "widgets", "description": "Widgets for every occasion", "license": "MIT",
  "scripts": {"test": "jest"}, "dependencies": {"express": "^4.0.0"}}`,
		"src/index.js": "console.log('hi')\n",
	})
}

func newGlobals() *GlobalConfig {
	return &GlobalConfig{Config: &config.Config{}}
}

// run executes c with args and returns what it wrote to stdout.
func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

// runRoot executes the full command tree, including global initialization.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return run(t, NewRootCmd(), append([]string{"--env-file", ""}, args...)...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type fakeRemote struct {
	repo *github.Repository
	err  error
}

func (f *fakeRemote) Repository(context.Context, string) (*github.Repository, error) {
	return f.repo, f.err
}

func readmePath(dir string) string {
	return filepath.Join(dir, "README.md")
}
