package validators

import "regexp"

var (
	// signupUsernamePattern accepts underscores that the login-path
	// validator rejects. The two rule sets diverge on purpose; the login
	// path must keep rejecting what it has always rejected.
	signupUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

	// signupEmailPattern only excludes spaces from the local part and
	// domain, and requires a 2-3 letter lowercase TLD. Looser than the
	// login-path pattern in the middle, stricter at the end.
	signupEmailPattern = regexp.MustCompile(`^[^ ]+@[^ ]+\.[a-z]{2,3}$`)

	// signupSpecialChars is the exact special-character set the signup
	// password rule counts; it is narrower than the login path's
	// "anything outside [a-zA-Z0-9]" class.
	signupSpecialChars = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)

	hasWhitespace = regexp.MustCompile(`\s`)
)

// ValidateSignupUsername reports whether s is acceptable as a new account's
// username: 3 to 20 characters, letters, digits, and underscore only.
func ValidateSignupUsername(s string) bool {
	return signupUsernamePattern.MatchString(s)
}

// ValidateSignupEmail reports whether s is acceptable as a new account's
// e-mail address: matches the signup e-mail pattern and is at most 254
// characters long.
func ValidateSignupEmail(s string) bool {
	if !signupEmailPattern.MatchString(s) {
		return false
	}

	return len(s) <= 254
}

// ValidateSignupPassword reports whether s satisfies the signup-path
// password syntax: 8 to 32 characters, at least one digit, at least one
// character from the signup special set, at least one uppercase letter, and
// no whitespace. Unlike the login path, a lowercase letter is NOT required.
func ValidateSignupPassword(s string) bool {
	if len(s) < 8 || len(s) > 32 {
		return false
	}
	if !hasDigit.MatchString(s) {
		return false
	}
	if !signupSpecialChars.MatchString(s) {
		return false
	}
	if !hasUppercase.MatchString(s) {
		return false
	}

	return !hasWhitespace.MatchString(s)
}
