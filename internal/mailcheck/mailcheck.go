// Package mailcheck verifies email delivery by counting messages in an
// IMAP mailbox, optionally emptying it between test runs.
package mailcheck

import (
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
	"github.com/flamegraph-analysis/pkg/utils"
)

// Ports that imply IMAPS with implicit TLS. Everything else speaks plain
// IMAP, which the delivery tests use on localhost.
var tlsPorts = map[int]bool{993: true, 2993: true}

// Options configures a mailbox verification run.
type Options struct {
	Host      string
	Port      int
	User      string
	Password  string
	Folder    string
	DeleteAll bool
	Timeout   time.Duration
}

// DefaultOptions returns the default verification options.
func DefaultOptions() Options {
	return Options{
		Host:    "localhost",
		Port:    993,
		Folder:  "INBOX",
		Timeout: 30 * time.Second,
	}
}

// Result reports the outcome of one verification run.
type Result struct {
	// Count is the number of messages in the folder before any deletion.
	Count uint32

	// Deleted is the number of messages expunged when DeleteAll was set.
	Deleted uint32
}

// Verifier counts and deletes messages over IMAP.
type Verifier struct {
	opts Options
	log  utils.Logger
}

// NewVerifier creates a verifier for the given options.
func NewVerifier(opts Options, log utils.Logger) *Verifier {
	if log == nil {
		log = &utils.NullLogger{}
	}
	return &Verifier{opts: opts, log: log}
}

// UseTLS reports whether the port implies implicit TLS.
func UseTLS(port int) bool {
	return tlsPorts[port]
}

// Verify connects, selects the folder, and returns the message count. When
// DeleteAll is set it also flags every message as deleted and expunges the
// folder.
func (v *Verifier) Verify() (*Result, error) {
	if v.opts.User == "" || v.opts.Password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "IMAP user and password are required")
	}

	c, err := v.dial()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMailboxError,
			fmt.Sprintf("failed to connect to %s", v.addr()), err)
	}
	defer c.Logout()

	if err := c.Login(v.opts.User, v.opts.Password); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMailboxError, "IMAP login failed", err)
	}

	mbox, err := c.Select(v.opts.Folder, false)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMailboxError,
			fmt.Sprintf("could not select folder %s", v.opts.Folder), err)
	}

	result := &Result{Count: mbox.Messages}

	if v.opts.DeleteAll && mbox.Messages > 0 {
		deleted, err := v.deleteAll(c, mbox.Messages)
		if err != nil {
			return nil, err
		}
		result.Deleted = deleted
		v.log.Info("Deleted %d messages from %s", deleted, v.opts.Folder)
	}

	return result, nil
}

func (v *Verifier) addr() string {
	return net.JoinHostPort(v.opts.Host, fmt.Sprintf("%d", v.opts.Port))
}

func (v *Verifier) dial() (*client.Client, error) {
	dialer := &net.Dialer{Timeout: v.opts.Timeout}

	var c *client.Client
	var err error
	if UseTLS(v.opts.Port) {
		c, err = client.DialWithDialerTLS(dialer, v.addr(), nil)
	} else {
		c, err = client.DialWithDialer(dialer, v.addr())
	}
	if err != nil {
		return nil, err
	}

	c.Timeout = v.opts.Timeout
	return c, nil
}

// deleteAll flags every message in the selected folder as deleted and
// expunges them.
func (v *Verifier) deleteAll(c *client.Client, count uint32) (uint32, error) {
	seq := new(imap.SeqSet)
	seq.AddRange(1, count)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.DeletedFlag}
	if err := c.Store(seq, item, flags, nil); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeMailboxError, "failed to flag messages for deletion", err)
	}

	if err := c.Expunge(nil); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeMailboxError, "failed to expunge folder", err)
	}

	return count, nil
}
