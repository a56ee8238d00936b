package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// PAN format: 5 letters, 4 digits, 1 letter (e.g. ABCDE1234F).
	panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Email reports whether the input looks like an email address.
func Email(email string) bool {
	if email == "" {
		return false
	}
	return emailPattern.MatchString(strings.ToLower(email))
}

// PAN reports whether the input is a well-formed Permanent Account Number.
// Comparison is case-insensitive; surrounding whitespace is ignored.
func PAN(pan string) bool {
	if pan == "" {
		return false
	}
	return panPattern.MatchString(strings.ToUpper(strings.TrimSpace(pan)))
}

// NormalizeEmail trims and lowercases an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePAN uppercases and trims a PAN for storage.
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}
