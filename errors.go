package peopledatalabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeEmptyParameters     ErrorCode = "empty_parameters"
	CodeInvalidEndpoint     ErrorCode = "invalid_endpoint"
	CodeUnknownField        ErrorCode = "unknown_field"
	CodeTypeMismatch        ErrorCode = "type_mismatch"
	CodeEnumViolation       ErrorCode = "enum_violation"
	CodeRangeViolation      ErrorCode = "range_violation"
	CodeCrossFieldViolation ErrorCode = "cross_field_violation"
	CodeInvalidConfig       ErrorCode = "invalid_config"
)

// Sentinel errors for use with errors.Is. Matching compares codes only.
var (
	ErrEmptyParameters     = NewError(CodeEmptyParameters, "no parameters supplied")
	ErrInvalidEndpoint     = NewError(CodeInvalidEndpoint, "invalid endpoint")
	ErrUnknownField        = NewError(CodeUnknownField, "unknown field")
	ErrTypeMismatch        = NewError(CodeTypeMismatch, "type mismatch")
	ErrEnumViolation       = NewError(CodeEnumViolation, "value not allowed")
	ErrRangeViolation      = NewError(CodeRangeViolation, "value out of range")
	ErrCrossFieldViolation = NewError(CodeCrossFieldViolation, "cross-field rule violated")
	ErrInvalidConfig       = NewError(CodeInvalidConfig, "invalid configuration")
)

// Error is the error type returned for every failure detected before a
// request reaches the transport.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new error with the given code.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
// For multiple details, this is more efficient than chaining WithDetail calls.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// CodeOf returns the code of err if it is (or wraps) an *Error, and the
// empty string otherwise.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// fieldError builds a field-scoped error.
func fieldError(code ErrorCode, field, format string, args ...any) *Error {
	return Errorf(code, "%s: %s", field, fmt.Sprintf(format, args...)).WithDetail("field", field)
}

// fromValidationErrors maps go-playground validation errors to an *Error
// carrying one detail per offending field.
func fromValidationErrors(code ErrorCode, err error) *Error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return NewError(code, err.Error())
	}
	details := make(map[string]any, len(valErrs))
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &Error{
		Code:    code,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "apiversion":
		return "must look like v5"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
