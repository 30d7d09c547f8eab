package sanitizer

import "strings"

// NormalizeEmail lowercases an email address and strips surrounding
// whitespace. Uniqueness checks and lookups always run on the normalized
// form so "User@X.com" and "user@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername strips surrounding whitespace. Case is preserved: the
// handle is displayed as entered, and the allowed character set makes
// case-folding collisions a non-issue.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
