// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitTime is the author time of commits made by InitGitRepo.
var CommitTime = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

// readmegenEnv lists environment variables that change CLI behaviour and
// must not leak from the developer's shell into tests.
var readmegenEnv = []string{
	"READMEGEN_CONFIG",
	"READMEGEN_TEMPLATE",
	"READMEGEN_OUTPUT",
	"READMEGEN_DATE_FORMAT",
	"READMEGEN_GITHUB_TOKEN",
	"READMEGEN_GITHUB_API_URL",
	"READMEGEN_GITHUB_TIMEOUT",
	"READMEGEN_RENDER_TIDY",
	"READMEGEN_LOG_TIMESTAMPS",
	"GITHUB_TOKEN",
}

// IsolateHome points HOME and XDG_CONFIG_HOME at an empty directory and
// clears readmegen environment variables, so neither the developer's global
// git config nor their readmegen config leaks into tests. Returns the home
// directory.
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range readmegenEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteFiles writes every name/content pair under a new directory named
// base inside a temp dir and returns its path.
func WriteFiles(t *testing.T, base string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// InitGitRepo initializes a git repository in dir, commits every file in it
// and adds an origin remote when remote is non-empty.
func InitGitRepo(t *testing.T, dir, remote string) *gogit.Repository {
	t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to open worktree: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		t.Fatalf("failed to stage files: %v", err)
	}
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author:            &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: CommitTime},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	if remote != "" {
		_, err := repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remote}})
		if err != nil {
			t.Fatalf("failed to add remote: %v", err)
		}
	}
	return repo
}
