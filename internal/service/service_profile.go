package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/validators"
	"github.com/avelasq/accountgate/models"
)

// UpdateProfile renames the account identified by userID.
//
// The new username must satisfy the signup-path username rules and be free
// in the directory. Unlike the outcome-based flows, failures here are
// returned as errors so callers can show the exact message.
func (a *accountService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) error {
	log := logger.FromContext(ctx)

	if !validators.ValidateSignupUsername(req.Username) {
		return ErrInvalidDataProvided
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("looking up account: %w", err)
	}

	oldNormalized := user.NormalizedUsername()
	newNormalized := models.NormalizeUsername(req.Username)

	if a.identity != nil && newNormalized != oldNormalized {
		// move the reservation before touching anything else so a losing
		// concurrent rename fails here
		if err := a.docs.Create(ctx, usernamesCollection, newNormalized, adapter.Document{
			"email": user.Email,
		}); err != nil {
			return fmt.Errorf("claiming username: %w", err)
		}
	}

	if err := a.users.UpdateUsername(ctx, userID, req.Username); err != nil {
		if a.identity != nil && newNormalized != oldNormalized {
			a.compensate(ctx, func() error { return a.docs.Delete(ctx, usernamesCollection, newNormalized) })
		}
		return fmt.Errorf("updating username: %w", err)
	}

	if a.identity != nil {
		accountID, err := a.profileAccountID(ctx, userID)
		if err != nil {
			log.Err(err).Str("id", userID).Msg("profile document lookup failed")
			return err
		}

		if err := a.identity.UpdateProfile(ctx, accountID, req.Username); err != nil {
			return fmt.Errorf("updating identity profile: %w", err)
		}
		if err := a.docs.Set(ctx, usersCollection, userID, adapter.Document{
			"account_id": accountID,
			"email":      user.Email,
			"username":   req.Username,
		}); err != nil {
			return fmt.Errorf("updating profile document: %w", err)
		}
		if newNormalized != oldNormalized {
			a.compensate(ctx, func() error { return a.docs.Delete(ctx, usernamesCollection, oldNormalized) })
		}
	}

	return nil
}

// DeleteAccount removes the account and everything provisioned for it in the
// reverse of provisioning order: profile document, identity account,
// username reservation, directory record. The first failure stops the
// sequence and its raw error is surfaced.
func (a *accountService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("looking up account: %w", err)
	}

	if a.identity != nil {
		accountID, err := a.profileAccountID(ctx, userID)
		if err != nil {
			return err
		}

		if err := a.docs.Delete(ctx, usersCollection, userID); err != nil {
			return fmt.Errorf("deleting profile document: %w", err)
		}
		if err := a.identity.DeleteAccount(ctx, accountID); err != nil {
			return fmt.Errorf("deleting identity account: %w", err)
		}
		if err := a.docs.Delete(ctx, usernamesCollection, user.NormalizedUsername()); err != nil {
			return fmt.Errorf("releasing username: %w", err)
		}
	}

	if err := a.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting directory record: %w", err)
	}

	log.Info().Str("id", userID).Msg("account deleted")
	return nil
}

// profileAccountID resolves the identity account ID stored in the profile
// document.
func (a *accountService) profileAccountID(ctx context.Context, userID string) (string, error) {
	doc, err := a.docs.Get(ctx, usersCollection, userID)
	if err != nil {
		return "", fmt.Errorf("reading profile document: %w", err)
	}

	accountID, ok := doc["account_id"].(string)
	if !ok || accountID == "" {
		return "", errors.New("profile document has no account id")
	}

	return accountID, nil
}
