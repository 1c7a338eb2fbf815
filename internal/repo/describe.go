package repo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/readmegen/cli/internal/git"
)

var setupDescription = regexp.MustCompile(`description\s*=\s*["']([^"']+)["']`)

// Description returns the first description declared by a manifest, or
// "A <language> project".
func Description(lang string, m *Manifests) string {
	candidates := []func() string{
		func() string {
			if m.Package != nil {
				return m.Package.Description
			}
			return ""
		},
		func() string {
			if match := setupDescription.FindStringSubmatch(m.SetupPy); match != nil {
				return match[1]
			}
			return ""
		},
		func() string {
			if m.PyProject == nil {
				return ""
			}
			if d := m.PyProject.Project.Description; d != "" {
				return d
			}
			return m.PyProject.Tool.Poetry.Description
		},
		func() string {
			if m.Cargo != nil {
				return m.Cargo.Package.Description
			}
			return ""
		},
		func() string {
			if m.Composer != nil {
				return m.Composer.Description
			}
			return ""
		},
		func() string {
			if m.Pubspec != nil {
				return m.Pubspec.Description
			}
			return ""
		},
	}

	for _, c := range candidates {
		if d := strings.TrimSpace(c()); d != "" {
			return d
		}
	}
	return fmt.Sprintf("A %s project", lang)
}

// Author is the project author.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// IsZero reports whether no author was found.
func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == ""
}

// DetectAuthor returns the author declared by package.json, pyproject.toml,
// Cargo.toml or composer.json, falling back to the git identity.
func DetectAuthor(m *Manifests, ident git.Identity) Author {
	if m.Package != nil && len(m.Package.Author) > 0 {
		if a := packageAuthor(m.Package.Author); a.Name != "" {
			return a
		}
	}

	if py := m.PyProject; py != nil {
		if len(py.Project.Authors) > 0 && py.Project.Authors[0].Name != "" {
			a := py.Project.Authors[0]
			return Author{Name: a.Name, Email: a.Email}
		}
		if len(py.Tool.Poetry.Authors) > 0 {
			name, email := parsePerson(py.Tool.Poetry.Authors[0])
			return Author{Name: name, Email: email}
		}
	}

	if m.Cargo != nil && len(m.Cargo.Package.Authors) > 0 {
		name, email := parsePerson(m.Cargo.Package.Authors[0])
		return Author{Name: name, Email: email}
	}

	if m.Composer != nil && len(m.Composer.Authors) > 0 && m.Composer.Authors[0].Name != "" {
		a := m.Composer.Authors[0]
		return Author{Name: a.Name, Email: a.Email}
	}

	return Author{Name: ident.Name, Email: ident.Email}
}

// packageAuthor decodes an npm author, either "Name <email> (url)" or
// {"name": ..., "email": ...}.
func packageAuthor(raw json.RawMessage) Author {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		name, email := parsePerson(s)
		return Author{Name: name, Email: email}
	}
	var obj Author
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj
	}
	return Author{}
}
