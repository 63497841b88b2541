package validation

import "regexp"

const (
	// Password bounds. The upper bound matches bcrypt's 72-byte input
	// limit; longer passwords are rejected rather than silently truncated.
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
