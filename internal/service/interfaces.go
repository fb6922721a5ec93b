package service

import (
	"context"

	"github.com/avelasq/accountgate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountService implements the account flows. Every flow resolves to a
// fixed [models.Outcome] message; user-caused failures never surface as
// errors.
type AccountService interface {
	// Login authenticates by email or username plus password. On success the
	// matched directory record is returned alongside the outcome.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Outcome)

	// Signup registers a new account after running the signup-path checks in
	// order. On success the created directory record is returned alongside
	// the outcome.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Outcome)

	// ResetPassword locates the account holding the supplied current
	// password and replaces it with the new one.
	ResetPassword(ctx context.Context, req models.ResetRequest) models.Outcome

	// UpdateProfile renames the account. Unlike the flows above it returns
	// raw errors so callers can surface the exact failure message.
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) error

	// DeleteAccount removes the account and everything provisioned for it.
	// Raw errors are surfaced like in UpdateProfile.
	DeleteAccount(ctx context.Context, userID string) error
}

// SessionService manages JWT session tokens for authenticated endpoints.
type SessionService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ChatService is the chat turn controller. It owns the Idle/Busy state and
// the transcript; at most one query is in flight at a time.
type ChatService interface {
	// SendQuery validates and dispatches one user query and returns the
	// answer message appended to the transcript.
	SendQuery(ctx context.Context, text string) (models.ChatMessage, error)

	// History returns the full transcript in arrival order.
	History(ctx context.Context) ([]models.ChatMessage, error)

	// ClearHistory wipes the transcript. A clear arriving while a query
	// is in flight is rejected with ErrChatBusy.
	ClearHistory(ctx context.Context) error
}
