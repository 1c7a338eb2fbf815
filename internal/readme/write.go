package readme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
)

// Change describes how writing content would affect the file at Path.
type Change struct {
	Path string

	// Status is one of output.StatusCreated, StatusUpdated or StatusUnchanged.
	Status string

	// Existing is the current file content, empty when the file is absent.
	Existing string

	// Diff is a unified diff from Existing to the new content.
	Diff string
}

// Plan compares content with the file at path without writing anything.
func Plan(path, content string) (*Change, error) {
	change := &Change{Path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		change.Status = output.StatusCreated
		change.Diff = output.UnifiedDiff("/dev/null", path, "", content)
		return change, nil
	case err != nil:
		return nil, readError(path, err)
	}

	change.Existing = string(data)
	if change.Existing == content {
		change.Status = output.StatusUnchanged
		return change, nil
	}
	change.Status = output.StatusUpdated
	change.Diff = output.UnifiedDiff(path, path, change.Existing, content)
	return change, nil
}

// Write replaces the file at path with content atomically, creating parent
// directories as needed. A reader never observes a partially written file.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return writeError(path, err)
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return writeError(path, err)
	}
	return nil
}

func readError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return oerrors.NewPermissionError("cannot read output file",
			map[string]string{"path": path}, "Check the file permissions.")
	}
	return fmt.Errorf("reading %s: %w", path, err)
}

func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return oerrors.NewPermissionError("cannot write output file",
			map[string]string{"path": path}, "Choose a writable --output location.")
	}
	return fmt.Errorf("writing %s: %w", path, err)
}
