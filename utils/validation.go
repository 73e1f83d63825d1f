// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func cleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(cleanPhone(phone))
}

// NormalizePhone turns a Turkish phone number as customers usually write it
// ("0532 444 55 66", "532 444 55 66", "90 532...") into E.164. Numbers that
// already carry a "+" are only cleaned. It returns false when the result is
// not a valid international number.
func NormalizePhone(phone string) (string, bool) {
	cleaned := cleanPhone(phone)
	switch {
	case cleaned == "":
		return "", false
	case strings.HasPrefix(cleaned, "+"):
	case strings.HasPrefix(cleaned, "00"):
		cleaned = "+" + cleaned[2:]
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 11:
		cleaned = "+90" + cleaned[1:]
	case strings.HasPrefix(cleaned, "90") && len(cleaned) == 12:
		cleaned = "+" + cleaned
	case len(cleaned) == 10:
		cleaned = "+90" + cleaned
	default:
		return "", false
	}
	if !ValidatePhone(cleaned) {
		return "", false
	}
	return cleaned, true
}
