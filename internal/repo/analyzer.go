package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/readmegen/cli/internal/git"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/render"
)

// GitInspector reads git metadata for a directory.
type GitInspector func(path string) (*git.Info, error)

// Analyzer collects README facts about a repository.
type Analyzer struct {
	// Root is the repository directory.
	Root string

	// FS is the filesystem rooted at Root. Defaults to os.DirFS(Root).
	FS fs.FS

	// Git reads git metadata. Defaults to git.Inspect.
	Git GitInspector

	// NoGit skips git inspection.
	NoGit bool

	// Exclude lists slash-separated paths, relative to Root, that are left
	// out of the listing. The README being generated is excluded so it never
	// describes itself.
	Exclude []string
}

// Info is everything Analyze learned about a repository.
type Info struct {
	Name         string              `json:"repo_name"`
	Description  string              `json:"description"`
	Language     string              `json:"language"`
	Languages    []string            `json:"languages"`
	Dependencies map[string][]string `json:"dependencies"`
	Scripts      []string            `json:"scripts"`
	Structure    []string            `json:"structure"`
	Features     []string            `json:"features"`
	Installation []string            `json:"installation"`
	Usage        []string            `json:"usage"`
	License      string              `json:"license"`
	Author       Author              `json:"author"`
	Git          *git.Info           `json:"git_info,omitempty"`
}

// Analyze scans the repository and runs every detector. Malformed manifests
// and a missing git repository are logged and skipped.
func (a *Analyzer) Analyze(ctx context.Context) (*Info, error) {
	root, err := filepath.Abs(a.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", a.Root, err)
	}

	fsys := a.FS
	if fsys == nil {
		fsys = os.DirFS(root)
	}

	log := output.StageLogger("scan")

	listing, err := Scan(fsys)
	if err != nil {
		return nil, err
	}
	for _, p := range a.Exclude {
		delete(listing, path.Clean(p))
	}
	log.Debug("scanned repository", "path", root, "entries", len(listing))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifests, errs := LoadManifests(fsys, listing)
	for _, e := range errs {
		log.Warn("skipping manifest", "error", e)
	}

	gitInfo := a.inspectGit(root)

	lang := PrimaryLanguage(listing)
	info := &Info{
		Name:         filepath.Base(root),
		Description:  Description(lang, manifests),
		Language:     lang,
		Languages:    Languages(listing),
		Dependencies: Dependencies(manifests),
		Scripts:      Scripts(manifests),
		Structure:    Structure(listing),
		Features:     Features(listing),
		Installation: Installation(lang, listing, manifests),
		Usage:        Usage(lang, listing, manifests),
		License:      License(fsys, listing, manifests),
		Author:       DetectAuthor(manifests, gitInfo.Identity()),
		Git:          gitInfo,
	}
	log.Debug("analysis complete", "language", info.Language, "license", info.License)
	return info, nil
}

func (a *Analyzer) inspectGit(root string) *git.Info {
	if a.NoGit {
		return nil
	}
	inspect := a.Git
	if inspect == nil {
		inspect = git.Inspect
	}

	info, err := inspect(root)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			output.Debug("no git repository", "path", root)
		} else {
			output.Warn("reading git metadata", "error", err)
		}
		return nil
	}
	return info
}

// Data converts Info to template data. Empty author and git values are
// omitted so their blocks test falsy.
func (i *Info) Data(dateFormat string) render.Data {
	deps := make(map[string]any, len(i.Dependencies))
	for eco, names := range i.Dependencies {
		deps[eco] = names
	}

	d := render.Data{
		"repo_name":    i.Name,
		"description":  i.Description,
		"language":     i.Language,
		"languages":    i.Languages,
		"dependencies": deps,
		"scripts":      i.Scripts,
		"structure":    i.Structure,
		"features":     i.Features,
		"installation": i.Installation,
		"usage":        i.Usage,
		"license":      i.License,
	}

	if !i.Author.IsZero() {
		author := map[string]any{}
		if i.Author.Name != "" {
			author["name"] = i.Author.Name
		}
		if i.Author.Email != "" {
			author["email"] = i.Author.Email
		}
		d["author"] = author
	}

	if gi := i.Git.Data(dateFormat); len(gi) > 0 {
		d["git_info"] = gi
	}
	return d
}
