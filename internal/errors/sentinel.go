package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid input: a malformed template or config.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates a network connectivity issue.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a repository, template, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrCancelled indicates the user declined to continue.
	ErrCancelled = errors.New("cancelled")
)
