package validators

import "regexp"

// MaxChatQueryLen is the maximum number of characters accepted in a single
// chat query after trimming.
const MaxChatQueryLen = 400

// nonPrintableASCII matches any character outside the printable ASCII range
// 0x20–0x7E: control characters and all non-ASCII unicode.
var nonPrintableASCII = regexp.MustCompile(`[^\x20-\x7e]`)

// ValidateChatQuery reports whether the already-trimmed chat input text may
// be dispatched to the answering service: non-empty, at most
// MaxChatQueryLen characters, printable ASCII only.
func ValidateChatQuery(text string) bool {
	if text == "" || len(text) > MaxChatQueryLen {
		return false
	}

	return !nonPrintableASCII.MatchString(text)
}
