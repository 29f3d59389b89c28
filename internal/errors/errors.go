package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
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

// Wrap wraps an error with additional context. Causes that are not already
// AppErrors get a stack trace attached.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if crdb.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   crdb.WithStack(err),
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if crdb.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   crdb.WithStack(err),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return crdb.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if crdb.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return crdb.Is(err, target)
}

// Error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeProviderFailed  = "PROVIDER_FAILED"
	CodeParseFailed     = "PARSE_FAILED"
	CodeUnsupportedFile = "UNSUPPORTED_FILE"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func ProviderFailed(provider string, cause error) *AppError {
	return &AppError{
		Code:    CodeProviderFailed,
		Message: fmt.Sprintf("%s provider failed", provider),
		Cause:   cause,
	}
}

func ParseFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseFailed,
		Message: message,
		Cause:   cause,
	}
}

func UnsupportedFile(filename string) *AppError {
	return New(CodeUnsupportedFile, fmt.Sprintf("unsupported file type: %s", filename))
}
