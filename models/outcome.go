package models

// Outcome is the closed result of a validation or account flow call:
// either the flow's single success marker or one failure marker carrying a
// human-readable reason. Outcomes are immutable values returned
// synchronously — never errors — so callers interpret a rejected
// login/signup/reset without any error handling.
type Outcome string

// Login flow outcomes.
//
// OutcomeLoginBadIdentifier deliberately covers three distinct conditions:
// malformed identifier, unknown account, and wrong password. Collapsing
// "account not found" and "wrong password" into the identifier bucket is an
// enumeration-resistance property and must not be split into finer variants
// without a security review.
const (
	OutcomeLoginSuccess       Outcome = "Login successful!"
	OutcomeLoginBadIdentifier Outcome = "Login failed. Username/email is invalid."
	OutcomeLoginBadPassword   Outcome = "Login failed. Password is invalid."
)

// Signup flow outcomes.
const (
	OutcomeSignupSuccess     Outcome = "Account creation successful!"
	OutcomeSignupBadUsername Outcome = "Account creation failed. Username is invalid"
	OutcomeSignupBadEmail    Outcome = "Account creation failed. Email is invalid"
	OutcomeSignupBadPassword Outcome = "Account creation failed. Password is invalid"
	OutcomeSignupBadRetyped  Outcome = "Account creation failed. Retyped password is invalid"
)

// Password-reset flow outcomes.
const (
	OutcomeResetSuccess    Outcome = "Password successfully updated!"
	OutcomeResetBadOld     Outcome = "Invalid password entered."
	OutcomeResetWeakNew    Outcome = "Password does not meet the criteria."
	OutcomeResetBadRetyped Outcome = "Retyped password does not match."
)

// Outcomes for collaborator failures that must not leak transport detail
// into the fixed vocabulary above.
const (
	OutcomeSignupUnavailable Outcome = "Account creation failed. Please try again later."
	OutcomeResetUnavailable  Outcome = "Password update failed. Please try again later."
)

// OK reports whether the outcome is one of the success markers.
func (o Outcome) OK() bool {
	switch o {
	case OutcomeLoginSuccess, OutcomeSignupSuccess, OutcomeResetSuccess:
		return true
	default:
		return false
	}
}

// String returns the human-readable outcome text.
// It implements the [fmt.Stringer] interface.
func (o Outcome) String() string {
	return string(o)
}
