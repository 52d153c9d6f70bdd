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

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDataLoad      = "DATA_LOAD_ERROR"
	CodeModelInvalid  = "MODEL_INVALID"
	CodeSampling      = "SAMPLING_ERROR"
	CodeReport        = "REPORT_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DataLoadError(source string, cause error) *AppError {
	return &AppError{
		Code:    CodeDataLoad,
		Message: fmt.Sprintf("failed to load dataset %s", source),
		Cause:   cause,
	}
}

func ModelInvalid(message string) *AppError {
	return New(CodeModelInvalid, message)
}

func SamplingError(cause error) *AppError {
	return &AppError{
		Code:    CodeSampling,
		Message: "posterior sampling failed",
		Cause:   cause,
	}
}

func ReportError(artifact string, cause error) *AppError {
	return &AppError{
		Code:    CodeReport,
		Message: fmt.Sprintf("failed to write %s", artifact),
		Cause:   cause,
	}
}
