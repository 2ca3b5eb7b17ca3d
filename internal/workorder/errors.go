package workorder

import (
	"errors"
	"fmt"
)

// Kind classifies domain errors so callers can map them to responses.
type Kind string

const (
	KindBadRequest        Kind = "BAD_REQUEST"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindInternal          Kind = "INTERNAL"
)

// Error is a domain error carrying a kind and a human readable message.
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

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadRequest reports malformed input or an unknown referenced entity.
func BadRequest(format string, args ...any) *Error {
	return newError(KindBadRequest, format, args...)
}

// NotFound reports a missing order, item or history target.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// Conflict reports a mutation against a terminal order or a duplicate key.
func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

// Forbidden reports a role that may not perform the requested change.
func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

// InvalidTransition reports a status change outside the transition table.
func InvalidTransition(format string, args ...any) *Error {
	return newError(KindInvalidTransition, format, args...)
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}
