// Package emailutil canonicalizes email addresses for duplicate detection.
package emailutil

import (
	"errors"
	"strings"
)

// ErrInvalidFormat is returned when an address has no usable local/domain split.
var ErrInvalidFormat = errors.New("invalid email format")

// EmailIdentity pairs the display form of an address with its canonical form.
// Original is what gets stored and displayed; Normalized is the duplicate-detection
// key only.
type EmailIdentity struct {
	Original   string
	Normalized string
}

// gmailAliasDomains are domains that ignore dots in the local part and support
// plus-addressing aliases.
var gmailAliasDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
}

// Normalize canonicalizes an email address for equality comparison.
// The whole address is lower-cased and trimmed. For Gmail domains the local part
// is truncated at the first '+' and stripped of dots; other domains keep their
// local part as-is. Normalize is idempotent.
func Normalize(raw string) (EmailIdentity, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))

	at := strings.LastIndex(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return EmailIdentity{}, ErrInvalidFormat
	}

	local := trimmed[:at]
	domain := trimmed[at+1:]

	if gmailAliasDomains[domain] {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		if local == "" {
			return EmailIdentity{}, ErrInvalidFormat
		}
	}

	return EmailIdentity{
		Original:   trimmed,
		Normalized: local + "@" + domain,
	}, nil
}
