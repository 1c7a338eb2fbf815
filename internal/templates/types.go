// Package templates provides the built-in README templates and template loading.
package templates

// Template represents a built-in README template with its metadata.
type Template struct {
	// Name is the template identifier (default, minimal).
	Name string

	// Description explains the template's purpose.
	Description string

	// Default indicates if this template is used when no template is given.
	Default bool
}

// Source is template text together with where it came from.
type Source struct {
	// Name identifies the template in messages: a file path or "builtin:<name>".
	Name string

	// Content is the raw template text.
	Content string

	// Fallback is true when the requested template could not be used and the
	// default built-in template was substituted.
	Fallback bool

	// Reason explains why Fallback happened. Nil otherwise.
	Reason error
}
