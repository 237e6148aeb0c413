package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164, reading national numbers in
// defaultRegion. Numbers that cannot be parsed are returned trimmed.
func NormalizePhone(phone, defaultRegion string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// WhatsAppDigits strips everything but digits, the form wa.me links expect.
func WhatsAppDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
