package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeDegenerateStratum = "DEGENERATE_STRATUM"
	CodeInsufficientData  = "INSUFFICIENT_DATA"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors

// ConfigInvalid flags a bad configuration value
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidParameter flags a scenario or stratum parameter that fails eager
// validation, before any random draws happen
func InvalidParameter(message string) *AppError {
	return New(CodeInvalidParameter, message)
}

// InvalidInput flags estimator input that violates a computational precondition
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// DegenerateStratum flags a stratum whose spread collapsed at estimation time
func DegenerateStratum(message string) *AppError {
	return New(CodeDegenerateStratum, message)
}

// InsufficientData flags a stratum too small for the requested draw
func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
