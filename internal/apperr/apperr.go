// Package apperr defines the error taxonomy shared by the workflow services.
// Handlers map kinds to transport status codes; anything that is not an
// *apperr.Error is treated as a system fault.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure.
type Kind int

const (
	// KindInternal is the zero value; unexpected faults keep it.
	KindInternal Kind = iota
	// KindNotFound signals an absent equipment item or booking.
	KindNotFound
	// KindValidation signals a rule violation (working hours, duration
	// bounds, conflicts, duplicate active booking).
	KindValidation
	// KindForbidden signals an actor without rights to the operation.
	KindForbidden
	// KindUnauthenticated signals a missing or invalid login.
	KindUnauthenticated
)

// Error carries a kind and a human-readable message naming the violated rule.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated builds a KindUnauthenticated error.
func Unauthenticated(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of err, or KindInternal for non-apperr errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
