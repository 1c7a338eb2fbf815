// Package git reads repository metadata with go-git.
package git

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when the path is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// shortHashLen is the length of abbreviated commit hashes.
const shortHashLen = 7

// Identity is a name and email pair.
type Identity struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// IsZero reports whether neither name nor email is set.
func (i Identity) IsZero() bool {
	return i.Name == "" && i.Email == ""
}

// Info is the metadata readmegen extracts from a repository.
type Info struct {
	// Branch is the checked out branch, or "HEAD" when detached.
	Branch string `json:"branch,omitempty"`

	// Commit is the abbreviated HEAD commit hash. Empty before the first commit.
	Commit string `json:"commit,omitempty"`

	// Remote is the origin fetch URL.
	Remote string `json:"remote,omitempty"`

	// LastCommit is the HEAD committer timestamp.
	LastCommit time.Time `json:"lastCommit,omitempty"`

	// Author is the HEAD commit author.
	Author Identity `json:"author,omitempty"`

	// User is the configured user identity (local config over global).
	User Identity `json:"user,omitempty"`
}

// Inspect opens the repository containing path, searching parent directories
// for .git, and collects its metadata.
func Inspect(path string) (*Info, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening repository %s: %w", path, err)
	}

	info := &Info{}

	if err := readHead(repo, info); err != nil {
		return nil, err
	}

	remote, err := repo.Remote("origin")
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.Remote = urls[0]
		}
	case errors.Is(err, gogit.ErrRemoteNotFound):
	default:
		return nil, fmt.Errorf("reading origin remote: %w", err)
	}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err == nil {
		info.User = Identity{Name: cfg.User.Name, Email: cfg.User.Email}
	}

	return info, nil
}

func readHead(repo *gogit.Repository, info *Info) error {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// No commits yet: HEAD is a symbolic ref to an unborn branch.
		ref, rerr := repo.Storer.Reference(plumbing.HEAD)
		if rerr == nil && ref.Type() == plumbing.SymbolicReference {
			info.Branch = ref.Target().Short()
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Branch = "HEAD"
	}

	hash := head.Hash().String()
	info.Commit = hash[:shortHashLen]

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading commit %s: %w", info.Commit, err)
	}
	info.LastCommit = commit.Committer.When
	info.Author = Identity{Name: commit.Author.Name, Email: commit.Author.Email}
	return nil
}

// Identity returns the best author identity: the configured user, falling
// back to the HEAD commit author.
func (i *Info) Identity() Identity {
	if i == nil {
		return Identity{}
	}
	if i.User.Name != "" {
		return i.User
	}
	return i.Author
}

// Data returns the git_info template value. Empty fields are omitted so they
// test falsy.
func (i *Info) Data(dateFormat string) map[string]any {
	if i == nil {
		return nil
	}
	d := make(map[string]any)
	put := func(k, v string) {
		if v != "" {
			d[k] = v
		}
	}
	put("branch", i.Branch)
	put("commit", i.Commit)
	put("remote", i.Remote)
	if !i.LastCommit.IsZero() {
		d["last_commit"] = i.LastCommit.Format(dateFormat)
	}
	return d
}
