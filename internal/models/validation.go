package models

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPassword requires at least 8 characters, no whitespace, and at
// least one letter or digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	if strings.ContainsAny(password, " \t\r\n") {
		return false
	}
	hasUpper := strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasLower := strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz")
	hasDigit := strings.ContainsAny(password, "0123456789")
	return hasUpper || hasLower || hasDigit
}

var specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),?":{}|<>]`)

// ValidName rejects strings carrying special characters.
func ValidName(s string) bool {
	return !specialCharRegex.MatchString(s)
}
