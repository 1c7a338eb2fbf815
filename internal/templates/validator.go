package templates

import (
	"sort"
	"strings"
)

// knownKeys lists the top-level keys produced by repository analysis and
// remote metadata, plus the reserved current_date.
var knownKeys = map[string]bool{
	"repo_name":    true,
	"description":  true,
	"language":     true,
	"languages":    true,
	"dependencies": true,
	"scripts":      true,
	"structure":    true,
	"features":     true,
	"installation": true,
	"usage":        true,
	"license":      true,
	"author":       true,
	"git_info":     true,
	"badges":       true,
	"repo_url":     true,
	"homepage":     true,
	"stars":        true,
	"forks":        true,
	"topics":       true,
	"current_date": true,
}

// KnownKeys returns the sorted top-level keys a template may reference.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VetResult is the outcome of vetting a template.
type VetResult struct {
	// Keys are all dot paths the template references.
	Keys []string

	// Unknown are referenced paths whose top-level key is never produced.
	// They always render empty, which usually means a typo.
	Unknown []string
}

// Vet parses src and reports referenced and unknown keys. Syntax errors are
// returned as *render.SyntaxError.
func Vet(src Source) (*VetResult, error) {
	tmpl, err := Parse(src)
	if err != nil {
		return nil, err
	}

	result := &VetResult{Keys: tmpl.Keys()}
	for _, k := range result.Keys {
		root, _, _ := strings.Cut(k, ".")
		if !knownKeys[root] {
			result.Unknown = append(result.Unknown, k)
		}
	}
	return result, nil
}
