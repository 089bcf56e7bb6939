// Package mailsend sends a fixed test email over SMTP to exercise the
// receipt path of a mail server under test.
package mailsend

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
	"github.com/flamegraph-analysis/pkg/utils"
)

// Options configures a send-test run.
type Options struct {
	Host    string
	Port    int
	From    string
	To      string
	Timeout time.Duration
}

// DefaultOptions returns the defaults for local delivery testing.
func DefaultOptions() Options {
	return Options{
		Host:    "localhost",
		Port:    2525,
		From:    "tony@example.com",
		To:      "pepper@example.com",
		Timeout: 10 * time.Second,
	}
}

// Sender delivers the test message over plain SMTP.
type Sender struct {
	opts Options
	log  utils.Logger
}

// NewSender creates a sender for the given options.
func NewSender(opts Options, log utils.Logger) *Sender {
	if log == nil {
		log = &utils.NullLogger{}
	}
	return &Sender{opts: opts, log: log}
}

// BuildMessage constructs the fixed test message for a sender/recipient pair.
func BuildMessage(from, to string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("invalid sender address %s", from), err)
	}
	if err := msg.To(to); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput,
			fmt.Sprintf("invalid recipient address %s", to), err)
	}
	msg.Subject("SMTP Test Message")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Test message from %s to %s", from, to))
	return msg, nil
}

// Send builds the test message and delivers it. The target is a test server
// on localhost, so TLS is disabled and failures are reported, not retried.
func (s *Sender) Send(ctx context.Context) error {
	msg, err := BuildMessage(s.opts.From, s.opts.To)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.opts.Host,
		mail.WithPort(s.opts.Port),
		mail.WithTLSPolicy(mail.NoTLS),
		mail.WithTimeout(s.opts.Timeout),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSendError, "failed to create SMTP client", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return apperrors.Wrap(apperrors.CodeSendError,
			fmt.Sprintf("failed to send from %s to %s", s.opts.From, s.opts.To), err)
	}

	s.log.Info("Email sent from %s to %s", s.opts.From, s.opts.To)
	return nil
}
