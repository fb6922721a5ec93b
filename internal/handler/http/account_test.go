package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelasq/accountgate/internal/mock"
	"github.com/avelasq/accountgate/internal/service"
	"github.com/avelasq/accountgate/internal/store"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// authedRequest builds a request whose context already carries the user ID,
// the way the auth middleware would have left it.
func authedRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	req = injectNopLogger(req)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

// ---- updateProfile ----

func TestUpdateProfile_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	account := mock.NewMockAccountService(ctrl)
	h := newHandlerWithServices(&service.Services{Account: account})

	req := models.ProfileUpdateRequest{Username: "renamed"}
	account.EXPECT().UpdateProfile(gomock.Any(), "user-1", req).Return(nil)

	// Act
	rr := httptest.NewRecorder()
	h.updateProfile(rr, authedRequest(t, http.MethodPut, "/api/user/profile", "user-1", req))

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateProfile_NoUserInContext(t *testing.T) {
	h := newHandlerWithServices(&service.Services{})

	req := httptest.NewRequest(http.MethodPut, "/api/user/profile", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.updateProfile(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateProfile_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid username", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "username taken", err: store.ErrUsernameAlreadyExists, wantStatus: http.StatusConflict},
		{name: "unknown account", err: store.ErrNoUserWasFound, wantStatus: http.StatusNotFound},
		{name: "unexpected failure", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			account := mock.NewMockAccountService(ctrl)
			h := newHandlerWithServices(&service.Services{Account: account})

			account.EXPECT().UpdateProfile(gomock.Any(), "user-1", gomock.Any()).Return(tt.err)

			rr := httptest.NewRecorder()
			h.updateProfile(rr, authedRequest(t, http.MethodPut, "/api/user/profile", "user-1", models.ProfileUpdateRequest{Username: "x"}))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ---- deleteAccount ----

func TestDeleteAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	account := mock.NewMockAccountService(ctrl)
	h := newHandlerWithServices(&service.Services{Account: account})

	account.EXPECT().DeleteAccount(gomock.Any(), "user-1").Return(nil)

	rr := httptest.NewRecorder()
	h.deleteAccount(rr, authedRequest(t, http.MethodDelete, "/api/user", "user-1", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	account := mock.NewMockAccountService(ctrl)
	h := newHandlerWithServices(&service.Services{Account: account})

	account.EXPECT().DeleteAccount(gomock.Any(), "user-1").Return(store.ErrNoUserWasFound)

	rr := httptest.NewRecorder()
	h.deleteAccount(rr, authedRequest(t, http.MethodDelete, "/api/user", "user-1", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteAccount_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	account := mock.NewMockAccountService(ctrl)
	h := newHandlerWithServices(&service.Services{Account: account})

	account.EXPECT().DeleteAccount(gomock.Any(), "user-1").Return(assert.AnError)

	rr := httptest.NewRecorder()
	h.deleteAccount(rr, authedRequest(t, http.MethodDelete, "/api/user", "user-1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
