package types

import (
	"errors"
	"fmt"
)

// Standard error types
type ErrorType string

const (
	ErrTypeConfig       ErrorType = "CONFIG_ERROR"
	ErrTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrTypeInvalidValue ErrorType = "INVALID_VALUE"
	ErrTypeConnection   ErrorType = "CONNECTION_ERROR"
	ErrTypeDatabase     ErrorType = "DATABASE_ERROR"
	ErrTypeNoData       ErrorType = "NO_DATA"
	ErrTypeParse        ErrorType = "PARSE_ERROR"
	ErrTypeRender       ErrorType = "RENDER_ERROR"
	ErrTypeExport       ErrorType = "EXPORT_ERROR"
	ErrTypeInternal     ErrorType = "INTERNAL_ERROR"
)

// StandardError provides consistent error formatting
type StandardError struct {
	Type    ErrorType
	Message string
	Details map[string]any
	Cause   error
}

func (e *StandardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// TypeOf reports the error class of err, unwrapping as needed.
// Errors outside the taxonomy map to ErrTypeInternal.
func TypeOf(err error) ErrorType {
	var serr *StandardError
	if errors.As(err, &serr) {
		return serr.Type
	}
	return ErrTypeInternal
}

// Error constructors for common cases

func NewConfigError(msg string, cause error) error {
	return &StandardError{
		Type:    ErrTypeConfig,
		Message: msg,
		Cause:   cause,
	}
}

func NewValidationError(field, msg string) error {
	return &StandardError{
		Type:    ErrTypeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

func NewInvalidValueError(field, value, msg string) error {
	return &StandardError{
		Type:    ErrTypeInvalidValue,
		Message: fmt.Sprintf("invalid value for %s: %s (%s)", field, value, msg),
		Details: map[string]any{"field": field, "value": value},
	}
}

func NewConnectionError(target string, cause error) error {
	return &StandardError{
		Type:    ErrTypeConnection,
		Message: fmt.Sprintf("connection to %s failed", target),
		Details: map[string]any{"target": target},
		Cause:   cause,
	}
}

func NewDatabaseError(operation string, cause error) error {
	return &StandardError{
		Type:    ErrTypeDatabase,
		Message: fmt.Sprintf("database %s failed", operation),
		Cause:   cause,
	}
}

func NewNoDataError() error {
	return &StandardError{
		Type:    ErrTypeNoData,
		Message: "no data found for any requested series",
	}
}

func NewParseError(field, value string, cause error) error {
	return &StandardError{
		Type:    ErrTypeParse,
		Message: fmt.Sprintf("cannot parse %s value %q", field, value),
		Details: map[string]any{"field": field, "value": value},
		Cause:   cause,
	}
}

func NewRenderError(msg string, cause error) error {
	return &StandardError{
		Type:    ErrTypeRender,
		Message: msg,
		Cause:   cause,
	}
}

func NewExportError(path string, cause error) error {
	return &StandardError{
		Type:    ErrTypeExport,
		Message: fmt.Sprintf("export to %s failed", path),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

func NewInternalError(msg string, cause error) error {
	return &StandardError{
		Type:    ErrTypeInternal,
		Message: msg,
		Cause:   cause,
	}
}
