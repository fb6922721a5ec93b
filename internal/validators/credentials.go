// Package validators implements the credential field validators used by the
// account flows. All validators are pure predicate functions: no side
// effects, no I/O, no errors — the flows translate a false result into the
// appropriate outcome.
//
// The login path and the signup path carry deliberately different rule sets
// (see signup.go). The divergence is preserved from the product's observed
// behavior and must not be unified silently: the login-path username
// validator rejects underscores that the signup-path validator accepts.
package validators

import "regexp"

var (
	// forbiddenChars matches whitespace and ASCII control characters,
	// including DEL. Any hit disqualifies the field.
	forbiddenChars = regexp.MustCompile(`[\s\x00-\x1f\x7f]`)

	// loginEmailPattern is intentionally stricter than real e-mail syntax:
	// alphanumeric local part, letters-only domain, single dot, letters-only
	// TLD. No dots, hyphens, or plus-addressing anywhere.
	loginEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z]+\.[a-zA-Z]+$`)

	loginUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	hasUppercase   = regexp.MustCompile(`[A-Z]`)
	hasLowercase   = regexp.MustCompile(`[a-z]`)
	hasDigit       = regexp.MustCompile(`[0-9]`)
	hasNonAlphanum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidateEmail reports whether s is acceptable as a login identifier in
// e-mail form: at most 254 characters, free of whitespace and control
// characters, and matching the (deliberately strict) login e-mail pattern.
func ValidateEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	if forbiddenChars.MatchString(s) {
		return false
	}

	return loginEmailPattern.MatchString(s)
}

// ValidateUsername reports whether s is acceptable as a login identifier in
// username form: 3 to 20 characters, free of whitespace and control
// characters, alphanumeric only. Note that underscores are rejected here
// although the signup path accepts them (see ValidateSignupUsername).
func ValidateUsername(s string) bool {
	if len(s) < 3 || len(s) > 20 {
		return false
	}
	if forbiddenChars.MatchString(s) {
		return false
	}

	return loginUsernamePattern.MatchString(s)
}

// ValidatePassword reports whether s satisfies the login-path password
// syntax: 8 to 32 characters, free of whitespace and control characters,
// with at least one uppercase letter, one lowercase letter, one digit, and
// one character outside [a-zA-Z0-9]. All four class checks are mandatory.
func ValidatePassword(s string) bool {
	if len(s) < 8 || len(s) > 32 {
		return false
	}
	if forbiddenChars.MatchString(s) {
		return false
	}

	return hasUppercase.MatchString(s) &&
		hasLowercase.MatchString(s) &&
		hasDigit.MatchString(s) &&
		hasNonAlphanum.MatchString(s)
}
