// Package clierr defines structured error types shared by the CLI and the bot.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for JSON consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	TaskNotFound       = "TASK_NOT_FOUND"
	BoardNotFound      = "BOARD_NOT_FOUND"
	BoardAlreadyExists = "BOARD_ALREADY_EXISTS"
	InvalidInput       = "INVALID_INPUT"
	InvalidDate        = "INVALID_DATE"
	InvalidTaskID      = "INVALID_TASK_ID"
	Forbidden          = "FORBIDDEN"
	NoChanges          = "NO_CHANGES"
	StatusConflict     = "STATUS_CONFLICT"
	StaleAction        = "STALE_ACTION"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	StorageCorrupt     = "STORAGE_CORRUPT"
	InternalError      = "INTERNAL_ERROR"
)

// Error represents a structured error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose message is prefixed onto cause.
func Wrap(code string, cause error, message string) *Error {
	return &Error{Code: code, Message: message + ": " + cause.Error(), cause: cause}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for internal and storage errors, 1 for all others.
func (e *Error) ExitCode() int {
	switch e.Code {
	case InternalError, StorageCorrupt:
		return 2 //nolint:mnd // exit code 2 for faults the user cannot fix by retrying
	}
	return 1
}

// CodeOf returns the code of the first *Error in err's chain, or InternalError.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// IsUserFacing reports whether err carries a code whose message can be shown
// to whoever triggered it.
func IsUserFacing(err error) bool {
	switch CodeOf(err) {
	case InternalError, StorageCorrupt:
		return false
	}
	return true
}

// SilentError signals an exit code without additional output.
// Used when results have already been written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
