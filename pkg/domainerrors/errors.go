// Package domainerrors carries coded errors across service and transport
// boundaries so handlers can map outcomes to HTTP statuses without inspecting
// error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for callers and for HTTP translation.
type Code string

const (
	// CodeNotFound: the referenced document id does not exist.
	CodeNotFound Code = "not_found"
	// CodeInvalidArgument: the request was understood but a field is
	// unacceptable (e.g. empty rejection reason). No state was mutated.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeBadRequest: the request body could not be parsed.
	CodeBadRequest Code = "bad_request"
	// CodeConfiguration: static configuration violates a startup invariant.
	// Fatal; the process must not serve with an ambiguous registry.
	CodeConfiguration Code = "configuration"
	// CodePersistence: the durable write-through failed. The in-memory
	// mutation is retained for the session; a restart reflects only the last
	// persisted snapshot.
	CodePersistence Code = "persistence"
	// CodeInternal: unexpected failure.
	CodeInternal Code = "internal"
)

// Error is a coded error with an operator-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from err without the cause chain.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to the HTTP status handlers should write.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConfiguration, CodeInternal:
		return http.StatusInternalServerError
	case CodePersistence:
		// Persistence failures surface as a warning on an otherwise
		// successful mutation; handlers that reach this mapping treat the
		// write-through as degraded service, not caller error.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
