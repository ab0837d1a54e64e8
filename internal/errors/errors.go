package errors

import (
	"errors"
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

// GetCode returns the error code if err wraps an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err wraps an AppError carrying the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeDataLoad      = "DATA_LOAD"
	CodeEmptyColumn   = "EMPTY_COLUMN"
	CodeMissingColumn = "MISSING_COLUMN"
	CodeRenderError   = "RENDER_ERROR"
	CodeExportError   = "EXPORT_ERROR"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors

// DataLoad marks a fatal input-file failure (absent, unreadable, malformed)
func DataLoad(message string, cause error) *AppError {
	return &AppError{Code: CodeDataLoad, Message: message, Cause: cause}
}

// EmptyColumn marks a numeric column with zero present values, for which
// mean imputation is undefined
func EmptyColumn(column string) *AppError {
	return New(CodeEmptyColumn, fmt.Sprintf("numeric column %q has no non-missing values; mean is undefined", column))
}

// MissingColumn marks a stage whose required column did not survive cleaning
func MissingColumn(stage, column string) *AppError {
	return New(CodeMissingColumn, fmt.Sprintf("stage %q requires column %q, which is not present in the cleaned table", stage, column))
}

// RenderError marks a chart rendering failure
func RenderError(chart string, cause error) *AppError {
	return &AppError{Code: CodeRenderError, Message: fmt.Sprintf("failed to render chart %q", chart), Cause: cause}
}

// ExportError marks a report/workbook export failure
func ExportError(artifact string, cause error) *AppError {
	return &AppError{Code: CodeExportError, Message: fmt.Sprintf("failed to export %q", artifact), Cause: cause}
}

// ConfigInvalid marks invalid configuration
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
