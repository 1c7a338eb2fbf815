package repo

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Manifest file names at the repository root.
const (
	fileRequirements = "requirements.txt"
	fileSetupPy      = "setup.py"
	filePyProject    = "pyproject.toml"
	filePackageJSON  = "package.json"
	fileGoMod        = "go.mod"
	fileCargo        = "Cargo.toml"
	filePubspec      = "pubspec.yaml"
	fileComposer     = "composer.json"
	fileGemfile      = "Gemfile"
	fileMakefile     = "Makefile"
)

// PackageJSON is the subset of an npm package.json readmegen reads.
type PackageJSON struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Author       json.RawMessage   `json:"author"`
	License      json.RawMessage   `json:"license"`
	Main         string            `json:"main"`
	Scripts      map[string]string `json:"scripts"`
	Dependencies map[string]string `json:"dependencies"`
}

// PyProject is the subset of a pyproject.toml readmegen reads, covering both
// PEP 621 [project] and [tool.poetry] layouts.
type PyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Description  string   `toml:"description"`
		Dependencies []string `toml:"dependencies"`
		License      any      `toml:"license"`
		Authors      []struct {
			Name  string `toml:"name"`
			Email string `toml:"email"`
		} `toml:"authors"`
		Scripts map[string]string `toml:"scripts"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Description  string         `toml:"description"`
			License      string         `toml:"license"`
			Authors      []string       `toml:"authors"`
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// CargoManifest is the subset of a Cargo.toml readmegen reads.
type CargoManifest struct {
	Package struct {
		Name        string   `toml:"name"`
		Description string   `toml:"description"`
		License     string   `toml:"license"`
		Authors     []string `toml:"authors"`
	} `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
}

// Pubspec is the subset of a Dart pubspec.yaml readmegen reads.
type Pubspec struct {
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Dependencies map[string]any `yaml:"dependencies"`
}

// Composer is the subset of a PHP composer.json readmegen reads.
type Composer struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	License     json.RawMessage   `json:"license"`
	Require     map[string]string `json:"require"`
	Authors     []struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"authors"`
}

// Manifests holds the parsed manifests found at the repository root. Absent
// or malformed manifests are nil or empty.
type Manifests struct {
	Package      *PackageJSON
	PyProject    *PyProject
	Cargo        *CargoManifest
	GoMod        *modfile.File
	Pubspec      *Pubspec
	Composer     *Composer
	SetupPy      string
	Requirements string
	Gemfile      string
	Makefile     string
}

// LoadManifests reads and parses every known manifest present in l. A
// malformed manifest is skipped and reported in the returned errors so the
// rest of the analysis can proceed.
func LoadManifests(fsys fs.FS, l Listing) (*Manifests, []error) {
	m := &Manifests{}
	var errs []error

	read := func(name string) ([]byte, bool) {
		if !l.HasFile(name) {
			return nil, false
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", name, err))
			return nil, false
		}
		return data, true
	}
	fail := func(name string, err error) {
		errs = append(errs, fmt.Errorf("parsing %s: %w", name, err))
	}

	if data, ok := read(filePackageJSON); ok {
		var pkg PackageJSON
		if err := json.Unmarshal(data, &pkg); err != nil {
			fail(filePackageJSON, err)
		} else {
			m.Package = &pkg
		}
	}
	if data, ok := read(filePyProject); ok {
		var py PyProject
		if err := toml.Unmarshal(data, &py); err != nil {
			fail(filePyProject, err)
		} else {
			m.PyProject = &py
		}
	}
	if data, ok := read(fileCargo); ok {
		var cargo CargoManifest
		if err := toml.Unmarshal(data, &cargo); err != nil {
			fail(fileCargo, err)
		} else {
			m.Cargo = &cargo
		}
	}
	if data, ok := read(fileGoMod); ok {
		f, err := modfile.ParseLax(fileGoMod, data, nil)
		if err != nil {
			fail(fileGoMod, err)
		} else {
			m.GoMod = f
		}
	}
	if data, ok := read(filePubspec); ok {
		var ps Pubspec
		if err := yaml.Unmarshal(data, &ps); err != nil {
			fail(filePubspec, err)
		} else {
			m.Pubspec = &ps
		}
	}
	if data, ok := read(fileComposer); ok {
		var c Composer
		if err := json.Unmarshal(data, &c); err != nil {
			fail(fileComposer, err)
		} else {
			m.Composer = &c
		}
	}
	if data, ok := read(fileSetupPy); ok {
		m.SetupPy = string(data)
	}
	if data, ok := read(fileRequirements); ok {
		m.Requirements = string(data)
	}
	if data, ok := read(fileGemfile); ok {
		m.Gemfile = string(data)
	}
	if data, ok := read(fileMakefile); ok {
		m.Makefile = string(data)
	}

	return m, errs
}

// rawString decodes a JSON value that is either a string or an object with
// one of the given string fields, e.g. {"type": "MIT"}.
func rawString(raw json.RawMessage, fields ...string) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, f := range fields {
			if v, ok := obj[f].(string); ok && v != "" {
				return v
			}
		}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, " OR ")
	}
	return ""
}

// personPattern matches npm/Cargo person strings: "Name <email> (url)".
var personPattern = regexp.MustCompile(`^\s*([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?\s*$`)

// parsePerson splits "Name <email> (url)" into name and email.
func parsePerson(s string) (name, email string) {
	m := personPattern.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s), ""
	}
	return m[1], m[2]
}
