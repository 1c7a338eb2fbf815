package templates

import (
	"embed"
	"fmt"
	"path"

	"github.com/readmegen/cli/internal/render"
)

//go:embed builtin/*.md.tmpl
var builtinFS embed.FS

// Content returns the raw text of a built-in template.
func Content(name string) (string, error) {
	t, err := Get(name)
	if err != nil {
		return "", err
	}
	data, err := builtinFS.ReadFile(path.Join("builtin", t.Name+".md.tmpl"))
	if err != nil {
		return "", fmt.Errorf("reading built-in template %s: %w", t.Name, err)
	}
	return string(data), nil
}

// Default returns the raw text of the default built-in template.
func Default() string {
	s, err := Content(DefaultTemplateName)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSource returns the default template as a Source.
func DefaultSource() Source {
	return Source{Name: BuiltinRef(DefaultTemplateName), Content: Default()}
}

// Parse parses a Source into a render.Template.
func Parse(src Source) (*render.Template, error) {
	return render.Parse(src.Name, src.Content)
}
