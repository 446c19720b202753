// Package apperrors defines the error kinds shared by every layer of the task
// server. Handlers translate a Kind into an HTTP status; nothing below the
// handlers knows about status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the boundary.
type Kind string

const (
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindConflict          Kind = "CONFLICT"
	KindInvalidCredential Kind = "INVALID_CREDENTIAL"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindNotFound          Kind = "NOT_FOUND"
	KindInternal          Kind = "INTERNAL"
)

// Error carries a Kind, a caller-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Kind so errors.Is(err, apperrors.NotFound("")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func InvalidArgument(msg string) *Error   { return newError(KindInvalidArgument, msg) }
func Conflict(msg string) *Error          { return newError(KindConflict, msg) }
func InvalidCredential(msg string) *Error { return newError(KindInvalidCredential, msg) }
func Unauthorized(msg string) *Error      { return newError(KindUnauthorized, msg) }
func Forbidden(msg string) *Error         { return newError(KindForbidden, msg) }
func NotFound(msg string) *Error          { return newError(KindNotFound, msg) }

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for errors that were not
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Server error"
}
