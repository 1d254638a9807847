package validation

import (
	"regexp"
	"strings"
)

// Korean business registration numbers are written 123-45-67890; the dashes are optional.
var businessNumberPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{5}$`)

// NonEmptyTrimmed reports whether s has content once surrounding whitespace is removed.
func NonEmptyTrimmed(s string) bool {
	return strings.TrimSpace(s) != ""
}

// PasswordsMatch reports whether the confirmation equals the password exactly.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// ValidBusinessNumber reports whether s is a well-formed business registration number.
func ValidBusinessNumber(s string) bool {
	return businessNumberPattern.MatchString(strings.TrimSpace(s))
}

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return Validator().Var(strings.TrimSpace(s), "required,email") == nil
}
