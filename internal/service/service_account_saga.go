package service

import (
	"context"
	"fmt"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/models"
)

// Document store collections used by the provisioning saga.
const (
	usersCollection     = "users"
	usernamesCollection = "usernames"
)

// provisionAccount creates everything a new account needs. In directory-only
// mode that is a single repository insert. With collaborators configured the
// steps run as a saga:
//
//  1. claim the normalized username in the reservation collection
//  2. create the identity account
//  3. insert the directory record
//  4. write the profile document
//
// On any failure the completed steps are undone in reverse order, so a
// half-registered account never survives. Compensation failures are logged
// and do not mask the original error.
func (a *accountService) provisionAccount(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if a.identity == nil {
		return a.users.CreateUser(ctx, user)
	}

	normalized := user.NormalizedUsername()
	if err := a.docs.Create(ctx, usernamesCollection, normalized, adapter.Document{
		"email": user.Email,
	}); err != nil {
		return models.User{}, fmt.Errorf("claiming username: %w", err)
	}

	accountID, err := a.identity.CreateAccount(ctx, user.Email, user.Password)
	if err != nil {
		a.compensate(ctx, func() error { return a.docs.Delete(ctx, usernamesCollection, normalized) })
		return models.User{}, fmt.Errorf("creating identity account: %w", err)
	}

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		a.compensate(ctx, func() error { return a.identity.DeleteAccount(ctx, accountID) })
		a.compensate(ctx, func() error { return a.docs.Delete(ctx, usernamesCollection, normalized) })
		return models.User{}, fmt.Errorf("creating directory record: %w", err)
	}

	if err := a.docs.Set(ctx, usersCollection, created.ID, adapter.Document{
		"account_id": accountID,
		"email":      created.Email,
		"username":   created.Username,
	}); err != nil {
		a.compensate(ctx, func() error { return a.users.DeleteUser(ctx, created.ID) })
		a.compensate(ctx, func() error { return a.identity.DeleteAccount(ctx, accountID) })
		a.compensate(ctx, func() error { return a.docs.Delete(ctx, usernamesCollection, normalized) })
		return models.User{}, fmt.Errorf("writing profile document: %w", err)
	}

	log.Info().Str("id", created.ID).Msg("account provisioned")
	return created, nil
}

func (a *accountService) compensate(ctx context.Context, undo func() error) {
	if err := undo(); err != nil {
		logger.FromContext(ctx).Err(err).Msg("compensation step failed")
	}
}
