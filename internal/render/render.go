// Package render implements the README template engine.
//
// A template is literal text with two kinds of tags:
//
//	{{path}}               substitutes the value at a dot path
//	{{#path}}...{{/path}}  keeps its body only when the value is truthy
//
// Blocks nest to any depth. Lists are never iterated; inside a substitution
// they are joined according to a per-field ListPolicy. The reserved key
// current_date always resolves to the render date.
package render

import (
	"io"
	"strings"
	"time"
)

// CurrentDateKey is the reserved key that resolves to the render date.
const CurrentDateKey = "current_date"

// DefaultDateFormat is the layout used for current_date (ISO 8601 date).
const DefaultDateFormat = "2006-01-02"

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	name string
	root []node
	keys []string
}

// Parse parses src into a Template. name is used in error messages.
func Parse(name, src string) (*Template, error) {
	tokens, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	root, keys, err := parse(name, src, tokens)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, root: root, keys: keys}, nil
}

// Must panics if err is non-nil. Intended for templates compiled into the binary.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Keys returns the sorted dot paths referenced by the template.
func (t *Template) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Execute renders the template against data and writes the result to w.
func (t *Template) Execute(w io.Writer, data Data, opts ...Option) error {
	_, err := io.WriteString(w, t.Render(data, opts...))
	return err
}

// Render renders the template against data and returns the result.
func (t *Template) Render(data Data, opts ...Option) string {
	s := &state{
		data: data,
		cfg:  newConfig(opts),
	}
	s.walk(t.root)
	return s.buf.String()
}

// Render parses src and renders it against data in one step.
func Render(src string, data Data, opts ...Option) (string, error) {
	t, err := Parse("template", src)
	if err != nil {
		return "", err
	}
	return t.Render(data, opts...), nil
}

type state struct {
	data Data
	cfg  config
	buf  strings.Builder
	date string
}

func (s *state) walk(nodes []node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *textNode:
			s.buf.WriteString(n.text)
		case *varNode:
			s.buf.WriteString(stringify(s.resolve(n.path, n.segs), s.cfg.policy(n.path)))
		case *blockNode:
			if Truthy(s.resolve(n.path, n.segs)) {
				s.walk(n.body)
			}
		}
	}
}

func (s *state) resolve(path string, segs []string) any {
	if path == CurrentDateKey {
		if s.date == "" {
			s.date = s.cfg.now().Format(s.cfg.dateFormat)
		}
		return s.date
	}
	v, _ := lookup(s.data, segs)
	return v
}

// Option configures rendering.
type Option func(*config)

type config struct {
	now           func() time.Time
	dateFormat    string
	policies      map[string]ListPolicy
	defaultPolicy ListPolicy
}

func newConfig(opts []Option) config {
	cfg := config{
		now:           time.Now,
		dateFormat:    DefaultDateFormat,
		policies:      DefaultListPolicies(),
		defaultPolicy: PolicyBullets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) policy(path string) ListPolicy {
	if p, ok := c.policies[path]; ok {
		return p
	}
	return c.defaultPolicy
}

// WithNow sets the clock used for current_date.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDateFormat sets the time layout used for current_date.
func WithDateFormat(layout string) Option {
	return func(c *config) {
		if layout != "" {
			c.dateFormat = layout
		}
	}
}

// WithListPolicy sets the list policy for a single dot path.
func WithListPolicy(path string, p ListPolicy) Option {
	return func(c *config) {
		c.policies[path] = p
	}
}

// WithListPolicies overlays policies onto the defaults.
func WithListPolicies(policies map[string]ListPolicy) Option {
	return func(c *config) {
		for path, p := range policies {
			c.policies[path] = p
		}
	}
}

// WithDefaultListPolicy sets the policy for paths without an explicit one.
func WithDefaultListPolicy(p ListPolicy) Option {
	return func(c *config) {
		c.defaultPolicy = p
	}
}
