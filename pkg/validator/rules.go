package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	usernameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// ValidEmail validates that a string is a well-formed email address with a
// dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}

			domain := parts[1]
			return strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") &&
				!strings.HasSuffix(domain, ".")
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// ValidUsername validates a display handle: 3-30 characters, letters,
// digits, and underscores only.
func ValidUsername(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < 3 || len(value) > 30 {
				return false
			}
			return usernameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be 3-30 characters and contain only letters, numbers, and underscores",
		},
	}
}

// StrongPassword validates the signup password policy: at least 8 characters
// with an uppercase letter, a lowercase letter, a digit, and a special
// character.
func StrongPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < 8 {
				return false
			}
			return uppercaseRegex.MatchString(value) &&
				lowercaseRegex.MatchString(value) &&
				digitRegex.MatchString(value) &&
				specialCharRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be at least 8 characters with uppercase, lowercase, number, and special character",
		},
	}
}
