package core

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail checks if an email address is valid according to RFC 5322
// Returns nil if valid, or an error describing why the email is invalid
func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address. Lookups and
// inserts must never see two spellings of the same address. The HTTP
// layer normalizes upstream, but the handlers re-normalize defensively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
