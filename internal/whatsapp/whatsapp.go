// Package whatsapp builds wa.me checkout links for the storefront.
package whatsapp

import (
	"net/url"
	"strings"
)

// Link returns the wa.me URL that opens a chat with the store number and the
// given message prefilled. The number is reduced to digits; a number without
// a country code gets the Brazilian 55 prefix.
func Link(number, message string) string {
	return "https://wa.me/" + NormalizeNumber(number) + "?text=" + url.QueryEscape(message)
}

// NormalizeNumber strips formatting from a phone number and ensures the 55
// country prefix expected by wa.me for Brazilian numbers.
func NormalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return digits
	}
	// DDD + número is 10 or 11 digits; anything longer already carries a
	// country code.
	if len(digits) <= 11 && !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	return digits
}
