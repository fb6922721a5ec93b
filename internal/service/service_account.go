package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/store"
	"github.com/avelasq/accountgate/internal/validators"
	"github.com/avelasq/accountgate/models"
)

// accountService is the concrete implementation of [AccountService].
//
// The user directory is the source of truth for lookups and collision
// checks. When the identity and document collaborators are configured the
// registration, reset, profile, and deletion flows additionally provision
// against them; with nil collaborators the flows run in directory-only mode,
// which is what local runs and the seeded demo directory use.
type accountService struct {
	users    store.UserRepository
	identity adapter.IdentityProvider
	docs     adapter.DocumentStore

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] over the given directory
// and optional collaborators. identity and docs must be both nil or both
// non-nil.
func NewAccountService(users store.UserRepository, identity adapter.IdentityProvider, docs adapter.DocumentStore, logger *logger.Logger) AccountService {
	return &accountService{
		users:    users,
		identity: identity,
		docs:     docs,
		logger:   logger,
	}
}

// Login authenticates by email or username plus password.
//
// Checks run in a fixed order and the first failure decides the outcome:
//  1. identifier shape (email rules when it contains "@", username rules
//     otherwise)
//  2. password shape
//  3. directory lookup
//  4. exact password comparison
//
// A failed lookup and a wrong password both resolve to the identifier
// outcome, so a caller cannot distinguish an unknown account from a bad
// password.
func (a *accountService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Outcome) {
	log := logger.FromContext(ctx)

	identifier := req.Identifier
	isEmail := strings.Contains(identifier, "@")

	if isEmail {
		if !validators.ValidateEmail(identifier) {
			return models.User{}, models.OutcomeLoginBadIdentifier
		}
	} else if !validators.ValidateUsername(identifier) {
		return models.User{}, models.OutcomeLoginBadIdentifier
	}

	if !validators.ValidatePassword(req.Password) {
		return models.User{}, models.OutcomeLoginBadPassword
	}

	var user models.User
	var err error
	if isEmail {
		user, err = a.users.FindUserByEmail(ctx, identifier)
	} else {
		user, err = a.users.FindUserByUsername(ctx, models.NormalizeUsername(identifier))
	}
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("directory lookup failed")
		}
		return models.User{}, models.OutcomeLoginBadIdentifier
	}

	if user.Password != req.Password {
		return models.User{}, models.OutcomeLoginBadIdentifier
	}

	return user, models.OutcomeLoginSuccess
}

// Signup registers a new account.
//
// Checks run in a fixed order and the first failure decides the outcome:
// username shape, email shape, password shape, retyped comparison, username
// collision, email collision. Only then is the account provisioned.
func (a *accountService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Outcome) {
	log := logger.FromContext(ctx)

	if !validators.ValidateSignupUsername(req.Username) {
		return models.User{}, models.OutcomeSignupBadUsername
	}
	if !validators.ValidateSignupEmail(req.Email) {
		return models.User{}, models.OutcomeSignupBadEmail
	}
	if !validators.ValidateSignupPassword(req.Password) {
		return models.User{}, models.OutcomeSignupBadPassword
	}
	if req.RetypedPassword != req.Password {
		return models.User{}, models.OutcomeSignupBadRetyped
	}

	normalized := models.NormalizeUsername(req.Username)
	if outcome, ok := a.checkCollisions(ctx, req.Email, normalized); !ok {
		return models.User{}, outcome
	}

	user, err := a.provisionAccount(ctx, models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("account provisioning failed")

		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists), errors.Is(err, adapter.ErrAccountExists):
			return models.User{}, models.OutcomeSignupBadEmail
		case errors.Is(err, store.ErrUsernameAlreadyExists), errors.Is(err, adapter.ErrDocumentExists):
			return models.User{}, models.OutcomeSignupBadUsername
		default:
			return models.User{}, models.OutcomeSignupUnavailable
		}
	}

	return user, models.OutcomeSignupSuccess
}

// checkCollisions reports whether email and normalized username are both
// free. Username is checked first, matching the order of the shape checks.
func (a *accountService) checkCollisions(ctx context.Context, email string, normalizedUsername string) (models.Outcome, bool) {
	log := logger.FromContext(ctx)

	if _, err := a.users.FindUserByUsername(ctx, normalizedUsername); err == nil {
		return models.OutcomeSignupBadUsername, false
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("username collision check failed")
		return models.OutcomeSignupUnavailable, false
	}

	if _, err := a.users.FindUserByEmail(ctx, email); err == nil {
		return models.OutcomeSignupBadEmail, false
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("email collision check failed")
		return models.OutcomeSignupUnavailable, false
	}

	return "", true
}

// ResetPassword updates the password of the account currently holding
// req.OldPassword.
//
// The directory is scanned for an exact password match first; an account
// that does not exist and a wrong current password are indistinguishable.
// The new password must pass the signup-path strength rules and match its
// retyped copy before anything is written.
func (a *accountService) ResetPassword(ctx context.Context, req models.ResetRequest) models.Outcome {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByPassword(ctx, req.OldPassword)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("password lookup failed")
		}
		return models.OutcomeResetBadOld
	}

	if !validators.ValidateSignupPassword(req.NewPassword) {
		return models.OutcomeResetWeakNew
	}
	if req.RetypedNewPassword != req.NewPassword {
		return models.OutcomeResetBadRetyped
	}

	if a.identity != nil {
		// re-authenticate against the identity backend before rewriting
		// credentials there
		accountID, err := a.identity.Authenticate(ctx, user.Email, req.OldPassword)
		if err != nil {
			if errors.Is(err, adapter.ErrInvalidCredentials) {
				return models.OutcomeResetBadOld
			}
			log.Err(err).Msg("identity re-authentication failed")
			return models.OutcomeResetUnavailable
		}
		if err := a.identity.UpdatePassword(ctx, accountID, req.NewPassword); err != nil {
			log.Err(err).Msg("identity password update failed")
			return models.OutcomeResetUnavailable
		}
	}

	if err := a.users.UpdatePassword(ctx, user.ID, req.NewPassword); err != nil {
		log.Err(err).Str("id", user.ID).Msg("directory password update failed")
		return models.OutcomeResetUnavailable
	}

	return models.OutcomeResetSuccess
}
