package cmd

import (
	"errors"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/render"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error to the
	// user, so main only needs to exit.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrCancelled):
		return ExitCancelled
	case errors.Is(err, render.ErrSyntax), errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrConnectivity):
		return ExitConnectivityError
	case errors.Is(err, oerrors.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// exitWith wraps err in an ExitError carrying the code derived from it.
func exitWith(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}
