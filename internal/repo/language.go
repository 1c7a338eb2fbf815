package repo

import (
	"path"
	"sort"
)

// Unknown is the primary language when no file matches any language.
const Unknown = "Unknown"

type languageRule struct {
	name     string
	patterns []string
}

// languageRules are scored in order; earlier entries win ties.
var languageRules = []languageRule{
	{"Python", []string{"*.py", "requirements.txt", "setup.py", "pyproject.toml"}},
	{"JavaScript", []string{"*.js", "package.json", "*.jsx"}},
	{"TypeScript", []string{"*.ts", "*.tsx", "tsconfig.json"}},
	{"Java", []string{"*.java", "pom.xml", "build.gradle"}},
	{"C++", []string{"*.cpp", "*.hpp", "*.cc", "CMakeLists.txt"}},
	{"C", []string{"*.c", "*.h", "Makefile"}},
	{"Go", []string{"*.go", "go.mod"}},
	{"Rust", []string{"*.rs", "Cargo.toml"}},
	{"PHP", []string{"*.php", "composer.json"}},
	{"Ruby", []string{"*.rb", "Gemfile"}},
	{"C#", []string{"*.cs", "*.csproj"}},
}

// extensionLanguages maps file extensions to display languages.
var extensionLanguages = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".jsx":   "React",
	".tsx":   "React/TypeScript",
	".java":  "Java",
	".cpp":   "C++",
	".c":     "C",
	".go":    "Go",
	".rs":    "Rust",
	".php":   "PHP",
	".rb":    "Ruby",
	".cs":    "CSharp",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".vue":   "Vue",
	".dart":  "Dart",
	".kt":    "Kotlin",
	".swift": "Swift",
}

// PrimaryLanguage scores each language by the number of files matching its
// patterns and returns the highest scorer, or Unknown when nothing matches.
func PrimaryLanguage(l Listing) string {
	best, bestScore := Unknown, 0
	for _, rule := range languageRules {
		score := 0
		for _, p := range rule.patterns {
			score += l.CountMatches(p)
		}
		if score > bestScore {
			best, bestScore = rule.name, score
		}
	}
	return best
}

// Languages returns the sorted set of languages found by file extension.
func Languages(l Listing) []string {
	seen := make(map[string]bool)
	for p, fi := range l {
		if fi.Dir {
			continue
		}
		if lang, ok := extensionLanguages[path.Ext(p)]; ok {
			seen[lang] = true
		}
	}

	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
