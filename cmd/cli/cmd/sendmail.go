package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/flamegraph-analysis/internal/mailsend"
)

// sendmailCmd represents the sendmail command
var sendmailCmd = &cobra.Command{
	Use:   "sendmail [host] [port] [from] [to]",
	Short: "Send a test email over SMTP",
	Long: `Send a fixed test message through the mail server under test. All
arguments are optional and default to a local test server. TLS is not
used; the target is a test instance on localhost.`,
	Args: cobra.MaximumNArgs(4),
	RunE: runSendmail,
}

func init() {
	rootCmd.AddCommand(sendmailCmd)

	binName := BinName()
	sendmailCmd.Example = `  # Send to the default local test server
  ` + binName + ` sendmail

  # Explicit endpoint and addresses
  ` + binName + ` sendmail localhost 2525 tony@example.com pepper@example.com`
}

func runSendmail(cmd *cobra.Command, args []string) error {
	opts := mailsend.DefaultOptions()
	if cfg.Mail.SMTP.Host != "" {
		opts.Host = cfg.Mail.SMTP.Host
	}
	if cfg.Mail.SMTP.Port > 0 {
		opts.Port = cfg.Mail.SMTP.Port
	}
	if cfg.Mail.SMTP.From != "" {
		opts.From = cfg.Mail.SMTP.From
	}
	if cfg.Mail.SMTP.To != "" {
		opts.To = cfg.Mail.SMTP.To
	}
	if cfg.Mail.SMTP.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(cfg.Mail.SMTP.TimeoutSeconds) * time.Second
	}

	if len(args) > 0 {
		opts.Host = args[0]
	}
	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		opts.Port = port
	}
	if len(args) > 2 {
		opts.From = args[2]
	}
	if len(args) > 3 {
		opts.To = args[3]
	}

	sender := mailsend.NewSender(opts, GetLogger())
	if err := sender.Send(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stdout, "FAILED: %v\n", err)
		return err
	}

	fmt.Fprintf(os.Stdout, "SUCCESS: Email sent from %s to %s\n", opts.From, opts.To)
	return nil
}
