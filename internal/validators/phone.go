package validators

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses a number as dialled in region and returns it in
// E.164. ok is false for numbers that cannot be dialled.
func NormalizePhone(raw, region string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
