package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChatQuery(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain question", "What games are on sale?", true},
		{"exactly 400 chars", strings.Repeat("a", 400), true},
		{"all printable ascii", `!"#$%&'()*+,-./:;<=>?@[\]^_{|}~`, true},
		{"empty", "", false},
		{"401 chars", strings.Repeat("a", 401), false},
		{"newline", "hello\nworld", false},
		{"tab", "hello\tworld", false},
		{"control character", "hello\x07world", false},
		{"non ascii", "héllo", false},
		{"emoji", "hello \U0001f600", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateChatQuery(tt.text))
		})
	}
}
