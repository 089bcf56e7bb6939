package mailsend

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "localhost", opts.Host)
	assert.Equal(t, 2525, opts.Port)
	assert.Equal(t, "tony@example.com", opts.From)
	assert.Equal(t, "pepper@example.com", opts.To)
	assert.Equal(t, 10*time.Second, opts.Timeout)
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage("tony@example.com", "pepper@example.com")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: SMTP Test Message")
	assert.Contains(t, raw, "From: <tony@example.com>")
	assert.Contains(t, raw, "To: <pepper@example.com>")
	assert.Contains(t, raw, "Test message from tony@example.com to pepper@example.com")
}

func TestBuildMessage_InvalidAddresses(t *testing.T) {
	_, err := BuildMessage("not an address", "pepper@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))

	_, err = BuildMessage("tony@example.com", "also not an address")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
}
