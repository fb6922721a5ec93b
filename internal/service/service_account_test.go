package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/mock"
	"github.com/avelasq/accountgate/internal/store"
	"github.com/avelasq/accountgate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newDirectoryOnlySvc builds an account service over the seeded in-memory
// directory, with no identity or document collaborators.
func newDirectoryOnlySvc(t *testing.T) AccountService {
	t.Helper()
	users := store.NewMemoryUserRepository(store.DemoSeed(), logger.Nop())
	return NewAccountService(users, nil, nil, logger.Nop())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	t.Run("by email", func(t *testing.T) {
		user, outcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists@gmail.com",
			Password:   "H3Ll0$aM",
		})
		assert.Equal(t, models.OutcomeLoginSuccess, outcome)
		assert.Equal(t, "exists", user.Username)
	})

	t.Run("by username", func(t *testing.T) {
		user, outcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists",
			Password:   "H3Ll0$aM",
		})
		assert.Equal(t, models.OutcomeLoginSuccess, outcome)
		assert.Equal(t, "exists@gmail.com", user.Email)
	})
}

func TestLogin_IdentifierShapeRejected(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
	}{
		{name: "email with subdomain digits", identifier: "user@mail2.com"},
		{name: "email with space", identifier: "user name@gmail.com"},
		{name: "username with underscore", identifier: "ex_ists"},
		{name: "username too short", identifier: "ab"},
		{name: "username too long", identifier: strings.Repeat("a", 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome := svc.Login(ctx, models.LoginRequest{
				Identifier: tt.identifier,
				Password:   "H3Ll0$aM",
			})
			assert.Equal(t, models.OutcomeLoginBadIdentifier, outcome)
		})
	}
}

func TestLogin_PasswordShapeRejected(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "H3l$o"},
		{name: "no uppercase", password: "h3ll0$am"},
		{name: "no digit", password: "HeLlO$aM"},
		{name: "no special", password: "H3Ll0SaM"},
		{name: "contains space", password: "H3Ll0 $aM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome := svc.Login(ctx, models.LoginRequest{
				Identifier: "exists@gmail.com",
				Password:   tt.password,
			})
			assert.Equal(t, models.OutcomeLoginBadPassword, outcome)
		})
	}
}

func TestLogin_LookupAndMismatchAreConflated(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	t.Run("unknown account", func(t *testing.T) {
		_, outcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "nobody@gmail.com",
			Password:   "H3Ll0$aM",
		})
		assert.Equal(t, models.OutcomeLoginBadIdentifier, outcome)
	})

	t.Run("wrong password of valid shape", func(t *testing.T) {
		_, outcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists@gmail.com",
			Password:   "Wr0ng$Pass",
		})
		assert.Equal(t, models.OutcomeLoginBadIdentifier, outcome)
	})
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	user, outcome := svc.Signup(ctx, models.SignupRequest{
		Username:        "wario_77",
		Email:           "wario@nintendo.com",
		Password:        "W@rio1234",
		RetypedPassword: "W@rio1234",
	})
	require.Equal(t, models.OutcomeSignupSuccess, outcome)
	assert.NotEmpty(t, user.ID)

	// the new account can log in right away
	_, loginOutcome := svc.Login(ctx, models.LoginRequest{
		Identifier: "wario@nintendo.com",
		Password:   "W@rio1234",
	})
	assert.Equal(t, models.OutcomeLoginSuccess, loginOutcome)
}

func TestSignup_NoLowercaseRequirement(t *testing.T) {
	svc := newDirectoryOnlySvc(t)
	ctx := context.Background()

	// the signup rules have no lowercase requirement, unlike login's
	_, outcome := svc.Signup(ctx, models.SignupRequest{
		Username:        "shouter",
		Email:           "shouter@nintendo.com",
		Password:        "PASSWORD1!",
		RetypedPassword: "PASSWORD1!",
	})
	assert.Equal(t, models.OutcomeSignupSuccess, outcome)
}

func TestSignup_CheckOrderAndOutcomes(t *testing.T) {
	ctx := context.Background()
	valid := func() models.SignupRequest {
		return models.SignupRequest{
			Username:        "wario77",
			Email:           "wario@nintendo.com",
			Password:        "W@rio1234",
			RetypedPassword: "W@rio1234",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.SignupRequest)
		outcome models.Outcome
	}{
		{
			name:    "username with forbidden character",
			mutate:  func(r *models.SignupRequest) { r.Username = "inva_lidU*ser" },
			outcome: models.OutcomeSignupBadUsername,
		},
		{
			name: "invalid username reported before invalid email",
			mutate: func(r *models.SignupRequest) {
				r.Username = "x"
				r.Email = "not-an-email"
			},
			outcome: models.OutcomeSignupBadUsername,
		},
		{
			name:    "email without dot",
			mutate:  func(r *models.SignupRequest) { r.Email = "wario@nintendocom" },
			outcome: models.OutcomeSignupBadEmail,
		},
		{
			name: "email longer than 254 characters",
			mutate: func(r *models.SignupRequest) {
				r.Email = strings.Repeat("a", 250) + "@b.com"
			},
			outcome: models.OutcomeSignupBadEmail,
		},
		{
			name:    "password without digit",
			mutate:  func(r *models.SignupRequest) { r.Password, r.RetypedPassword = "W@rioGame", "W@rioGame" },
			outcome: models.OutcomeSignupBadPassword,
		},
		{
			name:    "password with whitespace",
			mutate:  func(r *models.SignupRequest) { r.Password, r.RetypedPassword = "W@rio 1234", "W@rio 1234" },
			outcome: models.OutcomeSignupBadPassword,
		},
		{
			name:    "retyped mismatch",
			mutate:  func(r *models.SignupRequest) { r.RetypedPassword = "W@rio12345" },
			outcome: models.OutcomeSignupBadRetyped,
		},
		{
			name:    "username collision is case-insensitive",
			mutate:  func(r *models.SignupRequest) { r.Username = "EXISTS" },
			outcome: models.OutcomeSignupBadUsername,
		},
		{
			name:    "email already registered",
			mutate:  func(r *models.SignupRequest) { r.Email = "exists@gmail.com" },
			outcome: models.OutcomeSignupBadEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newDirectoryOnlySvc(t)
			req := valid()
			tt.mutate(&req)

			_, outcome := svc.Signup(ctx, req)
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

// ── Password reset ───────────────────────────────────────────────────────────

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success updates the stored password", func(t *testing.T) {
		svc := newDirectoryOnlySvc(t)

		outcome := svc.ResetPassword(ctx, models.ResetRequest{
			OldPassword:        "H3Ll0$aM",
			NewPassword:        "N3wP@ssw0rd",
			RetypedNewPassword: "N3wP@ssw0rd",
		})
		require.Equal(t, models.OutcomeResetSuccess, outcome)

		_, loginOutcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists@gmail.com",
			Password:   "N3wP@ssw0rd",
		})
		assert.Equal(t, models.OutcomeLoginSuccess, loginOutcome)

		_, oldOutcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists@gmail.com",
			Password:   "H3Ll0$aM",
		})
		assert.Equal(t, models.OutcomeLoginBadIdentifier, oldOutcome)
	})

	t.Run("unknown current password", func(t *testing.T) {
		svc := newDirectoryOnlySvc(t)

		outcome := svc.ResetPassword(ctx, models.ResetRequest{
			OldPassword:        "Wr0ng$Pass",
			NewPassword:        "N3wP@ssw0rd",
			RetypedNewPassword: "N3wP@ssw0rd",
		})
		assert.Equal(t, models.OutcomeResetBadOld, outcome)
	})

	t.Run("weak new password", func(t *testing.T) {
		svc := newDirectoryOnlySvc(t)

		outcome := svc.ResetPassword(ctx, models.ResetRequest{
			OldPassword:        "H3Ll0$aM",
			NewPassword:        "weak",
			RetypedNewPassword: "weak",
		})
		assert.Equal(t, models.OutcomeResetWeakNew, outcome)
	})

	t.Run("retyped mismatch leaves the password unchanged", func(t *testing.T) {
		svc := newDirectoryOnlySvc(t)

		outcome := svc.ResetPassword(ctx, models.ResetRequest{
			OldPassword:        "H3Ll0$aM",
			NewPassword:        "N3wP@ssw0rd",
			RetypedNewPassword: "N3wP@ssw0rD",
		})
		require.Equal(t, models.OutcomeResetBadRetyped, outcome)

		_, loginOutcome := svc.Login(ctx, models.LoginRequest{
			Identifier: "exists@gmail.com",
			Password:   "H3Ll0$aM",
		})
		assert.Equal(t, models.OutcomeLoginSuccess, loginOutcome)
	})
}

// ── Provisioning saga ────────────────────────────────────────────────────────

func newSagaSvc(t *testing.T, ctrl *gomock.Controller) (AccountService, *mock.MockIdentityProvider, *mock.MockDocumentStore) {
	t.Helper()
	users := store.NewMemoryUserRepository(nil, logger.Nop())
	identity := mock.NewMockIdentityProvider(ctrl)
	docs := mock.NewMockDocumentStore(ctrl)
	return NewAccountService(users, identity, docs, logger.Nop()), identity, docs
}

func sagaRequest() models.SignupRequest {
	return models.SignupRequest{
		Username:        "wario77",
		Email:           "wario@nintendo.com",
		Password:        "W@rio1234",
		RetypedPassword: "W@rio1234",
	}
}

func TestSignupSaga_ProvisionsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, identity, docs := newSagaSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		docs.EXPECT().Create(ctx, "usernames", "wario77", gomock.Any()).Return(nil),
		identity.EXPECT().CreateAccount(ctx, "wario@nintendo.com", "W@rio1234").Return("acct-1", nil),
		docs.EXPECT().Set(ctx, "users", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, doc adapter.Document) error {
				assert.Equal(t, "acct-1", doc["account_id"])
				assert.Equal(t, "wario77", doc["username"])
				return nil
			},
		),
	)

	user, outcome := svc.Signup(ctx, sagaRequest())
	assert.Equal(t, models.OutcomeSignupSuccess, outcome)
	assert.NotEmpty(t, user.ID)
}

func TestSignupSaga_IdentityFailureReleasesClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, identity, docs := newSagaSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		docs.EXPECT().Create(ctx, "usernames", "wario77", gomock.Any()).Return(nil),
		identity.EXPECT().CreateAccount(ctx, "wario@nintendo.com", "W@rio1234").
			Return("", errors.New("identity backend down")),
		docs.EXPECT().Delete(ctx, "usernames", "wario77").Return(nil),
	)

	_, outcome := svc.Signup(ctx, sagaRequest())
	assert.Equal(t, models.OutcomeSignupUnavailable, outcome)
}

func TestSignupSaga_DocumentFailureUndoesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, identity, docs := newSagaSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		docs.EXPECT().Create(ctx, "usernames", "wario77", gomock.Any()).Return(nil),
		identity.EXPECT().CreateAccount(ctx, "wario@nintendo.com", "W@rio1234").Return("acct-1", nil),
		docs.EXPECT().Set(ctx, "users", gomock.Any(), gomock.Any()).
			Return(errors.New("document backend down")),
		identity.EXPECT().DeleteAccount(ctx, "acct-1").Return(nil),
		docs.EXPECT().Delete(ctx, "usernames", "wario77").Return(nil),
	)

	_, outcome := svc.Signup(ctx, sagaRequest())
	assert.Equal(t, models.OutcomeSignupUnavailable, outcome)
}

func TestSignupSaga_ClaimConflictMapsToUsernameOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, docs := newSagaSvc(t, ctrl)
	ctx := context.Background()

	docs.EXPECT().Create(ctx, "usernames", "wario77", gomock.Any()).
		Return(adapter.ErrDocumentExists)

	_, outcome := svc.Signup(ctx, sagaRequest())
	assert.Equal(t, models.OutcomeSignupBadUsername, outcome)
}
