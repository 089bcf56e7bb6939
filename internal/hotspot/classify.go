// Package hotspot filters, ranks, and categorizes aggregated frame counts
// into the final hotspot report.
package hotspot

import "strings"

// Category labels for the default taxonomy. The parenthesized hints name the
// code paths each bucket collects.
const (
	CategoryIOReading = "I/O Reading (LineInputStream, readLine, readMultiline)"
	CategorySMTP      = "SMTP Protocol (ServerData, EmailReceipt)"
	CategoryStorage   = "Storage (LocalStorageClient, StorageProcessor)"
	CategoryDelivery  = "LMTP Delivery (DovecotStorageProcessor, saveToLmtp)"
	CategoryParsing   = "Email Parsing (EmailParser, MimeHeader)"
	CategoryConfig    = "Configuration (Config, Properties)"
	CategoryOther     = "Other"
)

// Rule assigns a category label to frame names matching its predicate.
// Rules are evaluated strictly in order and the first match wins, so a more
// specific rule placed before a broader one acts as an override, not as an
// independent tag.
type Rule struct {
	Label string
	Match func(frame string) bool
}

// ContainsAny returns a predicate that reports whether the frame name
// contains any of the given substrings. Matching is case-sensitive.
func ContainsAny(substrings ...string) func(string) bool {
	return func(frame string) bool {
		for _, s := range substrings {
			if strings.Contains(frame, s) {
				return true
			}
		}
		return false
	}
}

// DefaultRules returns the built-in taxonomy as an ordered rule list.
//
// The delivery rule ahead of the storage rule encodes the override: a frame
// that matches the storage patterns but mentions Dovecot belongs to LMTP
// delivery, not storage.
func DefaultRules() []Rule {
	storage := ContainsAny("LocalStorageClient", "StorageProcessor", "AVStorage", "SpamStorage")

	return []Rule{
		{
			Label: CategoryIOReading,
			Match: ContainsAny("LineInputStream", "readLine", "readMultiline", "SmtpFoundation.read"),
		},
		{
			Label: CategorySMTP,
			Match: ContainsAny("ServerData", "EmailReceipt.process", "EmailReceipt.run"),
		},
		{
			Label: CategoryDelivery,
			Match: func(frame string) bool {
				return storage(frame) && strings.Contains(frame, "Dovecot")
			},
		},
		{
			Label: CategoryStorage,
			Match: storage,
		},
		{
			Label: CategoryDelivery,
			Match: ContainsAny("Dovecot"),
		},
		{
			Label: CategoryParsing,
			Match: ContainsAny("EmailParser", "MimeHeader", "EmailBuilder"),
		},
		{
			Label: CategoryConfig,
			Match: ContainsAny("Config", "Properties", "ServerConfig"),
		},
	}
}

// DefaultLabelOrder returns the category display order for rollups.
func DefaultLabelOrder() []string {
	return []string{
		CategoryIOReading,
		CategorySMTP,
		CategoryStorage,
		CategoryDelivery,
		CategoryParsing,
		CategoryConfig,
		CategoryOther,
	}
}

// Classify assigns a frame to the first matching rule, or CategoryOther
// when no rule matches.
func Classify(frame string, rules []Rule) string {
	for _, rule := range rules {
		if rule.Match(frame) {
			return rule.Label
		}
	}
	return CategoryOther
}
