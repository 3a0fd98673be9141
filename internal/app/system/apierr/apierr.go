// Package apierr defines the REST error taxonomy shared by all features.
//
// Four kinds cover every operation boundary:
//   - Validation: malformed, missing, or out-of-enumeration input (400)
//   - NotFound: a referenced posting, application, or record is absent (404)
//   - Conflict: the request is incompatible with current state (409)
//   - Storage: the persistence layer itself failed (500)
//
// Handlers classify errors with errors.As / Kind and render them through
// httpjson.Error; storage failures are additionally logged and never
// surfaced with their internal message.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error taxonomy.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindStorage
)

// Error is a taxonomy error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400-class error with the given message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf returns a 400-class error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404-class error with the given message.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict returns a 409-class error with the given message.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Storage wraps a persistence failure. The caller-facing message is
// generic; the cause is preserved for logging.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf extracts the taxonomy kind from err. Unclassified errors are
// treated as storage failures so nothing escapes the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// MessageOf returns the caller-facing message for err. Storage errors
// carry the generic message set at the call site; their wrapped cause is
// never exposed. Unclassified errors map to a generic message.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// StatusOf maps err onto an HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
