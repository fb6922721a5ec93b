// Package adapter provides transport-layer abstractions for the external
// collaborators of the accountgate server.
//
// Three abstractions live here. [AnswerService] decouples the chat turn
// controller from the upstream question-answering backend; the package ships
// an HTTP/REST implementation ([NewHTTPAnswerService]). [IdentityProvider]
// and [DocumentStore] abstract the hosted identity and document backends the
// live registration saga talks to; in-memory implementations back local runs
// and tests.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrBadGateway] for 502).
package adapter

import (
	"context"

	"github.com/avelasq/accountgate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AnswerService defines transport-agnostic communication with the upstream
// answer backend the chat controller dispatches queries to.
type AnswerService interface {
	// Query submits one user question and returns the generated answer text.
	// A non-nil error carries the upstream failure message; callers surface
	// it to the user verbatim.
	Query(ctx context.Context, query string) (string, error)

	// History fetches the transcript the answer backend keeps on its side.
	History(ctx context.Context) ([]models.ChatMessage, error)

	// Initialize asks the backend to rebuild its document index. Used at
	// startup and after its knowledge base changes.
	Initialize(ctx context.Context) error

	// Health probes the backend liveness endpoint.
	Health(ctx context.Context) error
}

// IdentityProvider abstracts the hosted credential backend used by the live
// registration and password-reset paths. Account identifiers are opaque
// strings assigned by the provider.
type IdentityProvider interface {
	// CreateAccount registers a new credential pair and returns the
	// provider-assigned account ID. Returns [ErrAccountExists] if the email
	// is already registered.
	CreateAccount(ctx context.Context, email string, password string) (string, error)

	// Authenticate verifies a credential pair and returns the account ID.
	// Returns [ErrInvalidCredentials] when either part does not match.
	Authenticate(ctx context.Context, email string, password string) (string, error)

	// UpdatePassword replaces the password of an existing account.
	UpdatePassword(ctx context.Context, accountID string, newPassword string) error

	// UpdateProfile sets the display name attached to an account.
	UpdateProfile(ctx context.Context, accountID string, displayName string) error

	// DeleteAccount removes the account and its credentials.
	DeleteAccount(ctx context.Context, accountID string) error
}

// Document is a schemaless record stored in a [DocumentStore] collection.
type Document map[string]any

// DocumentStore abstracts the hosted document backend holding user profiles
// and the username reservation collection.
type DocumentStore interface {
	// Get returns the document stored under collection/id, or
	// [ErrDocumentNotFound].
	Get(ctx context.Context, collection string, id string) (Document, error)

	// Set writes the document under collection/id, replacing any previous
	// content.
	Set(ctx context.Context, collection string, id string, doc Document) error

	// Create writes the document only if collection/id does not exist yet.
	// Returns [ErrDocumentExists] otherwise. The registration saga relies on
	// this to claim a username atomically.
	Create(ctx context.Context, collection string, id string, doc Document) error

	// Delete removes the document under collection/id. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, collection string, id string) error
}
