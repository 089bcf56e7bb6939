package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(CodeFormatError, "constant pool not found")
	assert.Equal(t, "[FORMAT_ERROR] constant pool not found", err.Error())

	wrapped := Wrap(CodeDownloadError, "fetch report", fmt.Errorf("timeout"))
	assert.Equal(t, "[DOWNLOAD_ERROR] fetch report: timeout", wrapped.Error())
}

func TestAppError_Is(t *testing.T) {
	err := Wrap(CodeFormatError, "constant pool not found", nil)
	assert.True(t, errors.Is(err, ErrFormatError))
	assert.False(t, errors.Is(err, ErrDatabaseError))
	assert.True(t, IsFormatError(err))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeMailboxError, "imap login", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, IsMailboxError(err))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, CodeSendError, GetErrorCode(New(CodeSendError, "smtp dial")))
	assert.Equal(t, CodeUnknown, GetErrorCode(fmt.Errorf("plain error")))
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, "smtp dial", GetErrorMessage(New(CodeSendError, "smtp dial")))
	assert.Equal(t, "plain error", GetErrorMessage(fmt.Errorf("plain error")))
	assert.Equal(t, "", GetErrorMessage(nil))
}
