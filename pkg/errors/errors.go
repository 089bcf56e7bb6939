// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeFormatError   = "FORMAT_ERROR"
	CodeParseError    = "PARSE_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeDownloadError = "DOWNLOAD_ERROR"
	CodeUploadError   = "UPLOAD_ERROR"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeMailboxError  = "MAILBOX_ERROR"
	CodeSendError     = "SEND_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
	CodeNotFound      = "NOT_FOUND"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrFormatError   = New(CodeFormatError, "report format error")
	ErrParseError    = New(CodeParseError, "parse error")
	ErrInvalidInput  = New(CodeInvalidInput, "invalid input")
	ErrDownloadError = New(CodeDownloadError, "download error")
	ErrUploadError   = New(CodeUploadError, "upload error")
	ErrDatabaseError = New(CodeDatabaseError, "database error")
	ErrMailboxError  = New(CodeMailboxError, "mailbox error")
	ErrSendError     = New(CodeSendError, "send error")
	ErrConfigError   = New(CodeConfigError, "configuration error")
	ErrNotFound      = New(CodeNotFound, "resource not found")
)

// IsFormatError checks if the error is a report format error.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormatError)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsMailboxError checks if the error is a mailbox error.
func IsMailboxError(err error) bool {
	return errors.Is(err, ErrMailboxError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
