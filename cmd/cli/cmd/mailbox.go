package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flamegraph-analysis/internal/mailcheck"
)

var (
	// Mailbox command flags
	imapHost  string
	imapPort  int
	imapUser  string
	imapPass  string
	folder    string
	deleteAll bool
)

// mailboxCmd represents the mailbox command
var mailboxCmd = &cobra.Command{
	Use:   "mailbox",
	Short: "Count messages in an IMAP mailbox",
	Long: `Connect to an IMAP server and count the messages in a folder, to
verify that test traffic was delivered. Ports 993 and 2993 use implicit
TLS; other ports speak plain IMAP for local test servers.

With --delete-all the folder is emptied after counting, so the next test
run starts clean.`,
	RunE: runMailbox,
}

func init() {
	rootCmd.AddCommand(mailboxCmd)

	binName := BinName()
	mailboxCmd.Example = `  # Count messages in INBOX
  ` + binName + ` mailbox --port 2143 --user pepper@example.com --pass potts

  # Empty the folder between test runs
  ` + binName + ` mailbox --port 2143 --user pepper@example.com --pass potts --delete-all

  # Check a specific folder
  ` + binName + ` mailbox --user tony@example.com --pass stark --folder Sent`

	mailboxCmd.Flags().StringVar(&imapHost, "host", "", "IMAP server host (default from config)")
	mailboxCmd.Flags().IntVar(&imapPort, "port", 0, "IMAP server port (default from config)")
	mailboxCmd.Flags().StringVar(&imapUser, "user", "", "Username (email address)")
	mailboxCmd.Flags().StringVar(&imapPass, "pass", "", "Password")
	mailboxCmd.Flags().StringVar(&folder, "folder", "", "Folder to check (default INBOX)")
	mailboxCmd.Flags().BoolVar(&deleteAll, "delete-all", false, "Delete all messages in the folder")
}

func runMailbox(cmd *cobra.Command, args []string) error {
	opts := mailcheck.DefaultOptions()
	if cfg.Mail.IMAP.Host != "" {
		opts.Host = cfg.Mail.IMAP.Host
	}
	if cfg.Mail.IMAP.Port > 0 {
		opts.Port = cfg.Mail.IMAP.Port
	}
	opts.User = cfg.Mail.IMAP.User
	opts.Password = cfg.Mail.IMAP.Password
	if cfg.Mail.IMAP.Folder != "" {
		opts.Folder = cfg.Mail.IMAP.Folder
	}

	if imapHost != "" {
		opts.Host = imapHost
	}
	if imapPort > 0 {
		opts.Port = imapPort
	}
	if imapUser != "" {
		opts.User = imapUser
	}
	if imapPass != "" {
		opts.Password = imapPass
	}
	if folder != "" {
		opts.Folder = folder
	}
	opts.DeleteAll = deleteAll

	verifier := mailcheck.NewVerifier(opts, GetLogger())
	result, err := verifier.Verify()
	if err != nil {
		return err
	}

	if !deleteAll {
		fmt.Fprintf(os.Stdout, "Message count: %d\n", result.Count)
	}

	return nil
}
