package attendance

import (
	"errors"
	"fmt"
)

// Kind classifies errors surfaced by the attendance model and its store
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindValidation          Kind = "VALIDATION"
	KindConstraintViolation Kind = "CONSTRAINT_VIOLATION"
	KindStoreUnavailable    Kind = "STORE_UNAVAILABLE"
)

// Error is a typed error carrying a Kind so callers can map failures to
// user-visible behavior without string matching
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ErrValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ErrConstraintViolation(msg string, err error) *Error {
	return &Error{Kind: KindConstraintViolation, Message: msg, Err: err}
}

func ErrStoreUnavailable(msg string, err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or an empty Kind for untyped errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
