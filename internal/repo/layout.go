package repo

import (
	"sort"
	"strings"
)

// notableFiles are top-level files listed in the project structure.
var notableFiles = map[string]bool{
	"README.md":          true,
	"LICENSE":            true,
	"setup.py":           true,
	"pyproject.toml":     true,
	"package.json":       true,
	"go.mod":             true,
	"Cargo.toml":         true,
	"composer.json":      true,
	"Gemfile":            true,
	"pubspec.yaml":       true,
	"Makefile":           true,
	"Dockerfile":         true,
	"docker-compose.yml": true,
}

// Structure lists top-level directories (suffixed with "/") followed by
// notable top-level files. Hidden entries and dependency directories are
// left out.
func Structure(l Listing) []string {
	var dirs, files []string
	for _, name := range l.TopLevel() {
		if strings.HasPrefix(name, ".") {
			continue
		}
		fi := l[name]
		switch {
		case fi.Dir && !skipDirs[name]:
			dirs = append(dirs, name+"/")
		case !fi.Dir && notableFiles[name]:
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(dirs, files...)
}

type featureRule struct {
	name    string
	present func(Listing) bool
}

func anyDir(names ...string) func(Listing) bool {
	return func(l Listing) bool {
		for _, n := range names {
			if l.HasDir(n) {
				return true
			}
		}
		return false
	}
}

func anyFile(names ...string) func(Listing) bool {
	return func(l Listing) bool {
		for _, n := range names {
			if l.HasFile(n) {
				return true
			}
		}
		return false
	}
}

func hasTestFiles(l Listing) bool {
	return anyDir("tests", "test", "__tests__", "spec")(l) ||
		l.CountMatches("*_test.go") > 0 ||
		l.CountMatches("test_*.py") > 0 ||
		l.CountMatches("*.test.js") > 0 ||
		l.CountMatches("*.test.ts") > 0
}

var featureRules = []featureRule{
	{"Docker support", anyFile("Dockerfile")},
	{"Docker Compose", anyFile("docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml")},
	{"GitHub Actions", anyDir(".github/workflows")},
	{"GitLab CI", anyFile(".gitlab-ci.yml")},
	{"Automated testing", hasTestFiles},
	{"Documentation", anyDir("docs", "documentation")},
}

// Features detects notable project capabilities from the file layout.
func Features(l Listing) []string {
	var features []string
	for _, rule := range featureRules {
		if rule.present(l) {
			features = append(features, rule.name)
		}
	}
	return features
}
