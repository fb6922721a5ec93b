package models

import "time"

// ChatRole identifies the author of a transcript entry.
type ChatRole string

const (
	// ChatRoleUser marks a message typed by the visitor.
	ChatRoleUser ChatRole = "user"

	// ChatRoleBot marks a message produced by the answering service
	// (or an error placeholder when the service failed).
	ChatRoleBot ChatRole = "bot"
)

// ChatMessage is one entry of the chat transcript.
type ChatMessage struct {
	// Role is the author of the entry.
	Role ChatRole `json:"role"`

	// Text is the message body. For user entries it is the trimmed
	// input that passed the chat precondition (non-empty, at most 400
	// printable ASCII characters).
	Text string `json:"text"`

	// At is the server-side time the entry was appended.
	At time.Time `json:"at"`
}
