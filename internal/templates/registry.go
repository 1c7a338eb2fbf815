package templates

import (
	"fmt"
	"strings"
)

// DefaultTemplateName is the template used when --template is not specified.
const DefaultTemplateName = "default"

// builtinPrefix marks an explicit reference to a built-in template.
const builtinPrefix = "builtin:"

// templates is the internal registry of available templates.
var templates = map[string]Template{
	"default": {
		Name:        "default",
		Description: "Full README with features, requirements, usage, structure, license and author",
		Default:     true,
	},
	"minimal": {
		Name:        "minimal",
		Description: "Title, description, installation, usage and license only",
		Default:     false,
	},
}

// Get returns a template by name.
// Returns an error if the template is not found.
func Get(name string) (Template, error) {
	t, ok := templates[strings.TrimPrefix(name, builtinPrefix)]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// List returns all available templates.
func List() []Template {
	return []Template{
		templates["default"],
		templates["minimal"],
	}
}

// GetDefault returns the default template.
func GetDefault() Template {
	return templates[DefaultTemplateName]
}

// Names returns all template names.
func Names() []string {
	return []string{"default", "minimal"}
}

// IsBuiltin reports whether ref names a built-in template, either bare
// ("minimal") or prefixed ("builtin:minimal").
func IsBuiltin(ref string) bool {
	_, ok := templates[strings.TrimPrefix(ref, builtinPrefix)]
	return ok
}

// BuiltinRef returns the canonical reference for a built-in template name.
func BuiltinRef(name string) string {
	return builtinPrefix + strings.TrimPrefix(name, builtinPrefix)
}
