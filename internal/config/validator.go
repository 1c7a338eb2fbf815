package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	schema := compiled.LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("looking up #Config: %w", err)
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	return v.validateValue(v.ctx.Encode(cfg))
}

// ValidateFile validates the raw contents of a YAML config file. Unlike
// Validate it also reports unknown keys, which decoding into Config drops.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return v.ValidateYAML(data)
}

// ValidateYAML validates YAML config content.
func (v *Validator) ValidateYAML(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ValidationErrors{{Field: "(root)", Message: fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return v.validateValue(v.ctx.Encode(raw))
}

func (v *Validator) validateValue(val cue.Value) error {
	if err := val.Err(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err := v.schema.Unify(val).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	// A disjunction reports one error per failed branch; only the first
	// error for a field is kept.
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		field := fieldPath(e.Path())
		if seen[field] {
			continue
		}
		seen[field] = true
		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}

// fieldPath joins a CUE error path into a config key, dropping the schema
// definition it was unified with.
func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, ".")
}
