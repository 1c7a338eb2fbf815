package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every error that Parse returns for a malformed
// template. Use errors.Is(err, render.ErrSyntax) to tell syntax errors apart
// from I/O errors raised while writing output.
var ErrSyntax = errors.New("template syntax error")

// SyntaxError describes a malformed template: an unterminated action, an
// empty or invalid tag, or an unbalanced/mismatched block.
type SyntaxError struct {
	// Name is the template name passed to Parse.
	Name string

	// Line and Col are 1-based and point at the offending tag.
	Line int
	Col  int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s:%d:%d: %s", ErrSyntax, e.Name, e.Line, e.Col, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Location returns "name:line:col".
func (e *SyntaxError) Location() string {
	return fmt.Sprintf("%s:%d:%d", e.Name, e.Line, e.Col)
}

// newSyntaxError builds a SyntaxError for the byte offset off in src.
func newSyntaxError(name, src string, off int, format string, args ...any) *SyntaxError {
	if off > len(src) {
		off = len(src)
	}
	before := src[:off]
	line := strings.Count(before, "\n") + 1
	col := off - strings.LastIndexByte(before, '\n')
	return &SyntaxError{
		Name: name,
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf(format, args...),
	}
}
