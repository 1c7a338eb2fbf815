package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	oerrors "github.com/readmegen/cli/internal/errors"
)

// Load resolves a template reference. An empty reference selects the default
// built-in template. A reference is first tried as a file path, then as a
// built-in name. A missing or unreadable file falls back to the default
// template with Fallback set and Reason explaining why; Load never fails.
func Load(ref string) Source {
	if ref == "" {
		return DefaultSource()
	}

	if strings.HasPrefix(ref, builtinPrefix) {
		if content, err := Content(ref); err == nil {
			return Source{Name: BuiltinRef(ref), Content: content}
		}
		return fallback(oerrors.NewNotFoundError(
			fmt.Sprintf("unknown built-in template %q", ref), ref,
			fmt.Sprintf("Valid templates: %s", strings.Join(Names(), ", "))))
	}

	data, err := os.ReadFile(ref)
	if err == nil {
		return Source{Name: ref, Content: string(data)}
	}

	if errors.Is(err, fs.ErrNotExist) && IsBuiltin(ref) {
		content, cerr := Content(ref)
		if cerr == nil {
			return Source{Name: BuiltinRef(ref), Content: content}
		}
	}

	if errors.Is(err, fs.ErrNotExist) {
		return fallback(oerrors.NewNotFoundError("template file not found", ref,
			"Run 'readmegen template init' to scaffold one."))
	}
	return fallback(fmt.Errorf("reading template %s: %w", ref, err))
}

func fallback(reason error) Source {
	src := DefaultSource()
	src.Fallback = true
	src.Reason = reason
	return src
}

// WriteBuiltin writes the built-in template name to dest so it can be
// customized. Existing files are only replaced when force is set.
func WriteBuiltin(name, dest string, force bool) error {
	content, err := Content(name)
	if err != nil {
		return &oerrors.DetailError{
			Type:    "validation failed",
			Message: err.Error(),
			Hint:    fmt.Sprintf("Valid templates: %s", strings.Join(Names(), ", ")),
			Cause:   oerrors.ErrValidation,
		}
	}

	if _, err := os.Stat(dest); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "template file already exists",
			Location: dest,
			Hint:     "Use --force to overwrite it.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	if err := atomic.WriteFile(dest, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing template %s: %w", dest, err)
	}
	return nil
}
