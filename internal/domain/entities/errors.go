package entities

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies catalog failures at the service boundary.
type ErrorKind string

const (
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindBadRequest ErrorKind = "bad_request"
	KindInternal   ErrorKind = "internal"
)

// internalMessage is the only text an Internal error ever exposes.
const internalMessage = "internal error - check server logs"

// Sentinels for errors.Is matching by kind.
var (
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrBadRequest = &Error{Kind: KindBadRequest}
	ErrInternal   = &Error{Kind: KindInternal}
)

// Error is the closed error taxonomy returned by the catalog services.
type Error struct {
	Kind    ErrorKind
	Message string
	// Field and Value identify the offending input (colliding key, query string).
	Field string
	Value string
	cause error
}

func (e *Error) Error() string {
	if e.Kind == KindInternal {
		return internalMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying cause for server-side logging.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NotFound reports that no entity matched query.
func NotFound(query string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("pokemon %q not found", query),
		Field:   "query",
		Value:   query,
	}
}

// Conflict reports a uniqueness collision on field.
func Conflict(field, value string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("pokemon already exists with %s %s", field, value),
		Field:   field,
		Value:   value,
	}
}

// BadRequest reports invalid caller input.
func BadRequest(format string, args ...any) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(cause error) *Error {
	return &Error{
		Kind:  KindInternal,
		cause: cause,
	}
}

// KindOf returns the kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
