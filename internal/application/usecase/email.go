package usecase

import "strings"

// NormalizeEmail forma canónica con la que se guardan y buscan los emails.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
