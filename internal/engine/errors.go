package engine

import (
	"errors"
	"fmt"
)

// Error represents a failed engine operation.
//
// Engine failures are expected, recoverable outcomes:
//   - Validation: malformed or missing input (blank subject, start after end)
//   - Conflict: an insert or edit would overlap a stored event
//   - NotFound: unknown calendar name or unmatched event lookup
//   - Duplicate: a calendar name or target slot is already taken
//
// Error carries structured fields so presentation layers can decide how to
// render each kind.
type Error struct {
	// Kind identifies the failure category.
	Kind ErrorKind

	// Op names the operation that failed, e.g. "create event".
	Op string

	// Message is a human-readable description.
	Message string
}

// ErrorKind categorizes engine failures.
type ErrorKind string

const (
	// KindValidation indicates malformed or missing input.
	KindValidation ErrorKind = "VALIDATION"

	// KindConflict indicates an operation that would create an overlap.
	KindConflict ErrorKind = "CONFLICT"

	// KindNotFound indicates an unknown calendar or unmatched event.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindDuplicate indicates a name or slot that is already occupied.
	KindDuplicate ErrorKind = "DUPLICATE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsValidation reports whether err is a validation failure.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsConflict reports whether err is a conflict failure.
// Uses errors.As to handle wrapped errors.
func IsConflict(err error) bool { return hasKind(err, KindConflict) }

// IsNotFound reports whether err is a not-found failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsDuplicate reports whether err is a duplicate failure.
// Uses errors.As to handle wrapped errors.
func IsDuplicate(err error) bool { return hasKind(err, KindDuplicate) }

func hasKind(err error, kind ErrorKind) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

func validationError(op, format string, args ...any) *Error {
	return newError(KindValidation, op, format, args...)
}

func conflictError(op, format string, args ...any) *Error {
	return newError(KindConflict, op, format, args...)
}

func notFoundError(op, format string, args ...any) *Error {
	return newError(KindNotFound, op, format, args...)
}

func duplicateError(op, format string, args ...any) *Error {
	return newError(KindDuplicate, op, format, args...)
}
