package apperr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeUnauthorized    = "unauthorized"
	CodeUnauthenticated = "unauthenticated"
	CodeValidation      = "validationFailed"
	CodeOutOfTurn       = "outOfTurn"
	CodeNotFound        = "notFound"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error type shared by the interaction controllers and the services hosting them.
type Error struct {
	Code    string
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, "; "))
}

// Is matches any *Error carrying the same code, so callers can test against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUnauthorized    = &Error{Code: CodeUnauthorized, Message: "not authorized"}
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated, Message: "not authenticated"}
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrOutOfTurn       = &Error{Code: CodeOutOfTurn, Message: "operation out of turn"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
)

func Unauthorized(msg string) error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Unauthenticated reports missing or rejected credentials, as opposed to a known user lacking access.
func Unauthenticated(msg string) error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// OutOfTurn reports an operation invoked in a step or mode that does not accept it.
func OutOfTurn(op, state string) error {
	return &Error{Code: CodeOutOfTurn, Message: fmt.Sprintf("%s is not allowed in %s", op, state)}
}

func Validation(fields ...FieldError) error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

func NotFound(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// CodeOf returns the taxonomy code of err, or "" when err is not an *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldsOf returns the field errors carried by err, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
