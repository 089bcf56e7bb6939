package hotspot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	rules := DefaultRules()

	// readLine frames are I/O even when they also mention ServerData.
	label := Classify("com/mimecast/robin/smtp/ServerData.readLine", rules)
	assert.Equal(t, CategoryIOReading, label)
}

func TestClassify_DefaultTaxonomy(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		frame string
		want  string
	}{
		{"com/mimecast/robin/smtp/io/LineInputStream.read", CategoryIOReading},
		{"com/mimecast/robin/smtp/SmtpFoundation.readMultiline", CategoryIOReading},
		{"com/mimecast/robin/smtp/connection/ServerData.advance", CategorySMTP},
		{"com/mimecast/robin/smtp/EmailReceipt.process", CategorySMTP},
		{"com/mimecast/robin/storage/LocalStorageClient.save", CategoryStorage},
		{"com/mimecast/robin/storage/DovecotStorageProcessor.saveToLmtp", CategoryDelivery},
		{"com/mimecast/robin/mime/EmailParser.parse", CategoryParsing},
		{"com/mimecast/robin/mime/headers/MimeHeader.get", CategoryParsing},
		{"com/mimecast/robin/config/Config.getStringProperty", CategoryConfig},
		{"com/mimecast/robin/main/EmailDelivery.run", CategoryOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.frame, rules), "frame %s", tt.frame)
	}
}

func TestClassify_NestedDeliveryOverride(t *testing.T) {
	rules := DefaultRules()

	// A storage-pattern match that also mentions Dovecot is redirected to
	// delivery; the plain storage frame is not.
	assert.Equal(t, CategoryDelivery,
		Classify("storage/DovecotStorageProcessor.process", rules))
	assert.Equal(t, CategoryStorage,
		Classify("storage/StorageProcessor.process", rules))

	// Dovecot frames outside the storage patterns are delivery too.
	assert.Equal(t, CategoryDelivery,
		Classify("dovecot/DovecotClient.connect", rules))
}

func TestClassify_CatchAll(t *testing.T) {
	assert.Equal(t, CategoryOther, Classify("java/lang/Thread.run", DefaultRules()))
	assert.Equal(t, CategoryOther, Classify("", DefaultRules()))
}

func TestContainsAny(t *testing.T) {
	match := ContainsAny("foo", "bar")

	assert.True(t, match("a foo b"))
	assert.True(t, match("bar"))
	assert.False(t, match("baz"))
	// Case-sensitive, substring not regex.
	assert.False(t, match("FOO"))
	assert.True(t, ContainsAny(".")("a.b"))
}

func TestDefaultLabelOrder_CoversAllRuleLabels(t *testing.T) {
	order := make(map[string]bool)
	for _, label := range DefaultLabelOrder() {
		order[label] = true
	}
	for _, rule := range DefaultRules() {
		assert.True(t, order[rule.Label], "label %s missing from display order", rule.Label)
	}
	assert.True(t, order[CategoryOther])
}
