//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	assert.NotEqual(t, ErrValidation, ErrConnectivity)
	assert.NotEqual(t, ErrValidation, ErrPermission)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrNotFound, ErrCancelled)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "invalid value",
		Location: "templates/README.md.tmpl:4:2",
		Field:    "author.name",
		Context:  map[string]string{"Repository": "acme/widgets"},
		Hint:     "Close the block with {{/author}}",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: templates/README.md.tmpl:4:2")
	assert.Contains(t, output, "Field: author.name")
	assert.Contains(t, output, "Repository: acme/widgets")
	assert.Contains(t, output, "invalid value")
	assert.Contains(t, output, "Hint: Close the block with {{/author}}")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		"invalid value",
		"templates/README.md.tmpl:4:2",
		"author.name",
		"Close the block with {{/author}}",
	)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "invalid value", detail.Message)
	assert.Equal(t, "templates/README.md.tmpl:4:2", detail.Location)
	assert.Equal(t, "author.name", detail.Field)
	assert.Equal(t, "Close the block with {{/author}}", detail.Hint)
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "template check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "template check failed")
}

func TestDetailErrorContextOrdered(t *testing.T) {
	detail := &DetailError{
		Type:    "connectivity failed",
		Message: "request failed",
		Context: map[string]string{"b": "2", "a": "1", "c": "3"},
	}

	out := detail.Error()
	assert.Less(t, strings.Index(out, "a: 1"), strings.Index(out, "b: 2"))
	assert.Less(t, strings.Index(out, "b: 2"), strings.Index(out, "c: 3"))
}

func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		typ      string
	}{
		{"connectivity", NewConnectivityError("timeout", nil, ""), ErrConnectivity, "connectivity failed"},
		{"not found", NewNotFoundError("missing", "/repo", ""), ErrNotFound, "not found"},
		{"permission", NewPermissionError("forbidden", nil, "set a token"), ErrPermission, "permission denied"},
		{"cancelled", NewCancelledError("overwrite declined", "README.md"), ErrCancelled, "operation cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			var detail *DetailError
			require.True(t, errors.As(tt.err, &detail))
			assert.Equal(t, tt.typ, detail.Type)
		})
	}
}
