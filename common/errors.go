// Package common provides shared constants, types, and utilities
// used across the Onyx Desktop application.
package common

import "errors"

// Sentinel errors for shell operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Validation errors. Rejected before any state mutation: the stored
	// configuration is untouched when one of these is returned.
	ErrInvalidServerURL = errors.New("server URL must start with http:// or https://")
	ErrInvalidPath      = errors.New("navigation path must be relative")

	// Persistence errors. In-memory state is already mutated when a save
	// fails, so retrying the save alone is valid.
	ErrPersistence = errors.New("failed to persist configuration")
	ErrNoConfigDir = errors.New("no configuration directory resolvable")

	// Window errors.
	ErrWindowNotFound = errors.New("window not found")
	ErrWindowCreate   = errors.New("failed to create window")

	// Platform errors. Logged and abandoned; never fatal after startup.
	ErrPlatform    = errors.New("platform operation failed")
	ErrUnsupported = errors.New("operation not supported on this platform")

	// Shortcut errors.
	ErrChordTaken   = errors.New("chord already registered")
	ErrChordUnknown = errors.New("chord has no key mapping on this platform")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
