package tui

import "github.com/avelasq/accountgate/models"

// NavigateTo switches the root router to another page. Payload, when set,
// is delivered to the target page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload interface{}
}

// AuthResult reports the completion of an async login attempt.
type AuthResult struct {
	Outcome models.Outcome
	Err     error
}

// RegisterSuccessNotice is shown on the menu after a successful signup.
type RegisterSuccessNotice struct {
	Username string
}

type queryDoneMsg struct {
	answer string
	err    error
}

type historyLoadedMsg struct {
	history []models.ChatMessage
	err     error
}

type resetDoneMsg struct {
	outcome models.Outcome
	err     error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
