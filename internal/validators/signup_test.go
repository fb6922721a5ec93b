package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// ValidateSignupUsername
// ---------------------------------------------------------------------------

func TestValidateSignupUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple", "validUser", true},
		// underscore is allowed on the signup path only
		{"underscore", "valid_user", true},
		{"min length", "ab1", true},
		{"max length", strings.Repeat("a", 20), true},
		{"asterisk", "inva_lidU*ser", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 21), false},
		{"space", "valid user", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignupUsername(tt.username))
		})
	}
}

// ---------------------------------------------------------------------------
// ValidateSignupEmail
// ---------------------------------------------------------------------------

func TestValidateSignupEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple", "notexists@gmail.com", true},
		// the signup pattern tolerates dots and plus signs that the
		// login pattern rejects
		{"dotted local part", "first.last@gmail.com", true},
		{"plus addressing", "user+tag@gmail.com", true},
		{"two letter tld", "user@site.io", true},
		{"four letter tld", "user@site.info", false},
		{"uppercase tld", "user@site.COM", false},
		{"space in local part", "not exists@gmail.com", false},
		{"missing at", "notexistsgmail.com", false},
		{"missing tld", "notexists@gmail", false},
		{"over 254 chars", strings.Repeat("a", 250) + "@a.com", false},
		{"exactly 254 chars", strings.Repeat("a", 248) + "@a.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignupEmail(tt.email))
		})
	}
}

// ---------------------------------------------------------------------------
// ValidateSignupPassword
// ---------------------------------------------------------------------------

func TestValidateSignupPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"digit special upper", "H3Ll0$aM", true},
		// no lowercase requirement on the signup path
		{"no lowercase", "HELLO123!", true},
		{"underscore counts as special", "PASSWORD_1", true},
		{"too short", "H3Ll0$a", false},
		{"too long", "H3!" + strings.Repeat("A", 30), false},
		{"no digit", "Hello$World", false},
		{"no special", "Hello1234", false},
		{"no uppercase", "hello123!", false},
		{"space", "H3Ll0 $aM", false},
		{"tab", "H3Ll0\t$aM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignupPassword(tt.password))
		})
	}
}
