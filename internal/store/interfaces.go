package store

import (
	"context"

	"github.com/avelasq/accountgate/models"
)

// UserRepository is the user directory consulted by the account flows.
//
// FindUserByUsername expects the normalized form of the username (trimmed,
// lower-cased); callers are responsible for normalizing before the lookup.
// FindUserByPassword implements the mock reset-flow semantics: it locates a
// record whose stored password equals the supplied value exactly.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, normalizedUsername string) (models.User, error)
	FindUserByPassword(ctx context.Context, password string) (models.User, error)
	UpdatePassword(ctx context.Context, userID string, newPassword string) error
	UpdateUsername(ctx context.Context, userID string, username string) error
	DeleteUser(ctx context.Context, userID string) error
}

// TranscriptRepository persists the chat transcript so that history survives
// page reloads and can be served via the history endpoint.
type TranscriptRepository interface {
	AppendMessage(ctx context.Context, msg models.ChatMessage) error
	History(ctx context.Context) ([]models.ChatMessage, error)
	Clear(ctx context.Context) error
}
