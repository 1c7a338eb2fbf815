package github

import (
	"fmt"

	"github.com/readmegen/cli/internal/render"
)

const shieldsURL = "https://img.shields.io/github"

// licenseName prefers the SPDX identifier GitHub detected.
func (r *Repository) licenseName() string {
	if r.License == nil {
		return ""
	}
	if r.License.SPDXID != "" && r.License.SPDXID != "NOASSERTION" {
		return r.License.SPDXID
	}
	if r.License.Name != "Other" {
		return r.License.Name
	}
	return ""
}

// Badges returns shields.io markdown badges for the repository.
func (r *Repository) Badges() []string {
	slug := r.FullName
	if slug == "" {
		return nil
	}
	badges := []string{
		fmt.Sprintf("![GitHub stars](%s/stars/%s?style=flat)", shieldsURL, slug),
		fmt.Sprintf("![GitHub forks](%s/forks/%s?style=flat)", shieldsURL, slug),
	}
	if r.licenseName() != "" {
		badges = append(badges, fmt.Sprintf("![License](%s/license/%s)", shieldsURL, slug))
	}
	if r.Language != "" {
		badges = append(badges, fmt.Sprintf("![Top language](%s/languages/top/%s)", shieldsURL, slug))
	}
	badges = append(badges, fmt.Sprintf("![Last commit](%s/last-commit/%s)", shieldsURL, slug))
	return badges
}

// Data returns the template values contributed by remote metadata. Values
// are merged over local analysis, where falsy ones never overwrite.
func (r *Repository) Data() render.Data {
	return render.Data{
		"description": r.Description,
		"homepage":    r.Homepage,
		"repo_url":    r.HTMLURL,
		"stars":       r.Stars,
		"forks":       r.Forks,
		"topics":      r.Topics,
		"license":     r.licenseName(),
		"badges":      r.Badges(),
	}
}
