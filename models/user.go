package models

import (
	"strings"
	"time"
)

// User represents one registered account (a credential record).
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the opaque stable identifier of the account, assigned at
	// creation and immutable afterwards.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID string `json:"-"`

	// Email is the unique e-mail address of the account.
	// Comparisons are case-sensitive, exactly as stored.
	Email string `json:"email"`

	// Username is the display/login name of the account.
	// Uniqueness is enforced on the normalized form (see NormalizedUsername).
	Username string `json:"username"`

	// Password stores the account's password representation.
	// The in-memory mock directory keeps it as supplied and compares by
	// exact match; real backends must store a derived value instead.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// NormalizedUsername returns the uniqueness key for the account's username:
// leading/trailing whitespace trimmed and letters lower-cased.
func (u User) NormalizedUsername() string {
	return NormalizeUsername(u.Username)
}

// NormalizeUsername trims surrounding whitespace and lower-cases s.
// The result is the key under which username uniqueness is enforced.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
