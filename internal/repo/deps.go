package repo

import (
	"regexp"
	"sort"
	"strings"
)

// Dependency ecosystems, used as keys under "dependencies".
const (
	EcosystemPython = "python"
	EcosystemNode   = "nodejs"
	EcosystemGo     = "go"
	EcosystemRust   = "rust"
	EcosystemDart   = "dart"
	EcosystemPHP    = "php"
	EcosystemRuby   = "ruby"
)

var (
	// requirementName matches the distribution name at the start of a PEP 508
	// requirement such as "requests[socks]>=2.0; python_version>'3'".
	requirementName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*`)

	gemPattern = regexp.MustCompile(`(?m)^\s*gem\s+['"]([^'"]+)['"]`)
)

// Dependencies returns the direct dependency names declared by each manifest,
// keyed by ecosystem. Ecosystems without dependencies are omitted.
func Dependencies(m *Manifests) map[string][]string {
	deps := make(map[string][]string)
	add := func(eco string, names []string) {
		if len(names) > 0 {
			deps[eco] = names
		}
	}

	add(EcosystemPython, pythonDependencies(m))

	if m.Package != nil {
		add(EcosystemNode, sortedKeys(m.Package.Dependencies))
	}

	if m.GoMod != nil {
		var names []string
		for _, r := range m.GoMod.Require {
			if !r.Indirect {
				names = append(names, r.Mod.Path)
			}
		}
		add(EcosystemGo, names)
	}

	if m.Cargo != nil {
		add(EcosystemRust, sortedKeys(m.Cargo.Dependencies))
	}

	if m.Pubspec != nil {
		names := sortedKeys(m.Pubspec.Dependencies)
		add(EcosystemDart, without(names, func(n string) bool { return n == "flutter" }))
	}

	if m.Composer != nil {
		names := sortedKeys(m.Composer.Require)
		add(EcosystemPHP, without(names, func(n string) bool {
			return n == "php" || strings.HasPrefix(n, "ext-")
		}))
	}

	if m.Gemfile != "" {
		var names []string
		for _, match := range gemPattern.FindAllStringSubmatch(m.Gemfile, -1) {
			names = append(names, match[1])
		}
		add(EcosystemRuby, dedupe(names))
	}

	return deps
}

// pythonDependencies merges requirements.txt with pyproject.toml, in that
// order, without duplicates.
func pythonDependencies(m *Manifests) []string {
	var names []string

	for _, line := range strings.Split(m.Requirements, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if name := requirementName.FindString(line); name != "" {
			names = append(names, name)
		}
	}

	if py := m.PyProject; py != nil {
		for _, req := range py.Project.Dependencies {
			if name := requirementName.FindString(strings.TrimSpace(req)); name != "" {
				names = append(names, name)
			}
		}
		for _, name := range sortedKeys(py.Tool.Poetry.Dependencies) {
			if !strings.EqualFold(name, "python") {
				names = append(names, name)
			}
		}
	}

	return dedupe(names)
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func without(items []string, drop func(string) bool) []string {
	var out []string
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
