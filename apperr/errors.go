package apperr

import (
	"errors"
	"fmt"
)

// Kind is the category of an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPersistence
	KindEnrichment
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	case KindEnrichment:
		return "enrichment"
	default:
		return "unknown"
	}
}

// Error is the error type returned by stores, the enrichment client and
// validation helpers.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so
// errors.Is(err, apperr.ErrNotFound) works without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrPersistence = &Error{Kind: KindPersistence}
	ErrEnrichment  = &Error{Kind: KindEnrichment}
)

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds the error for a missing row, e.g. "task 7 not found".
func NotFound(resource string, id int64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %d not found", resource, id)}
}

func Persistence(operation string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: "database operation failed: " + operation, Cause: cause}
}

func Enrichment(message string, cause error) *Error {
	return &Error{Kind: KindEnrichment, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the message of the first *Error in err's chain, or
// err.Error() for foreign errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
