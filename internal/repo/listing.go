// Package repo inspects a repository's files and derives README facts.
//
// Detectors are pure functions over a Listing (relative path to file info)
// and the parsed Manifests, so they can be tested over fstest.MapFS without
// touching the real filesystem.
package repo

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// skipDirs are never descended into while scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// FileInfo is the subset of file metadata detectors need.
type FileInfo struct {
	Size int64
	Dir  bool
}

// Listing maps slash-separated paths relative to the repository root to
// their info.
type Listing map[string]FileInfo

// Scan walks fsys and returns its Listing, skipping dependency, build and VCS
// directories.
func Scan(fsys fs.FS) (Listing, error) {
	l := make(Listing)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() && skipDirs[d.Name()] {
			return fs.SkipDir
		}

		info := FileInfo{Dir: d.IsDir()}
		if !d.IsDir() {
			fi, err := d.Info()
			if err != nil {
				return err
			}
			info.Size = fi.Size()
		}
		l[p] = info
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning repository: %w", err)
	}
	return l, nil
}

// HasFile reports whether p exists and is a regular file.
func (l Listing) HasFile(p string) bool {
	fi, ok := l[p]
	return ok && !fi.Dir
}

// HasDir reports whether p exists and is a directory.
func (l Listing) HasDir(p string) bool {
	fi, ok := l[p]
	return ok && fi.Dir
}

// Exists reports whether p exists.
func (l Listing) Exists(p string) bool {
	_, ok := l[p]
	return ok
}

// CountMatches counts files at any depth whose base name matches the glob
// pattern.
func (l Listing) CountMatches(pattern string) int {
	n := 0
	for p, fi := range l {
		if fi.Dir {
			continue
		}
		if ok, _ := path.Match(pattern, path.Base(p)); ok {
			n++
		}
	}
	return n
}

// Files returns all file paths, sorted.
func (l Listing) Files() []string {
	var files []string
	for p, fi := range l {
		if !fi.Dir {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}

// TopLevel returns the entries directly under the root, sorted.
func (l Listing) TopLevel() []string {
	var names []string
	for p := range l {
		if !strings.Contains(p, "/") {
			names = append(names, p)
		}
	}
	sort.Strings(names)
	return names
}
