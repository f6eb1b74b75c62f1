package mpesa

import (
	"regexp"
	"strings"
)

var (
	nonDigits    = regexp.MustCompile(`\D`)
	kenyanMobile = regexp.MustCompile(`^254[17]\d{8}$`)
)

// FormatPhoneNumber normalises a Kenyan phone number to the canonical
// digits-only international form (2547XXXXXXXX). It accepts the local
// trunk form (07...), the international form with or without a leading
// plus, and a bare subscriber number. The function is pure and
// idempotent: an already-normalised number comes back unchanged.
func FormatPhoneNumber(phoneNumber string) string {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")

	switch {
	case strings.HasPrefix(cleaned, "0"):
		cleaned = "254" + cleaned[1:]
	case strings.HasPrefix(cleaned, "254"):
		// already canonical
	default:
		// assume a local number without country code
		cleaned = "254" + cleaned
	}

	return cleaned
}

// ValidatePhoneNumber reports whether the number, once normalised, is a
// valid Kenyan mobile number: 254 followed by a 7 or 1 prefix and eight
// digits. Fixed-line ranges are rejected.
func ValidatePhoneNumber(phoneNumber string) bool {
	return kenyanMobile.MatchString(FormatPhoneNumber(phoneNumber))
}
