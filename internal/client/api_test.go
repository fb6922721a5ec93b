package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.Handler) *API {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAPI(srv.URL, 5*time.Second, logger.Nop())
}

func TestAPI_Login_CapturesToken(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/user/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "exists", req.Identifier)

		w.Header().Set("Authorization", "Bearer issued-token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.OutcomeResponse{Outcome: models.OutcomeLoginSuccess, Ok: true})
	}))

	outcome, err := api.Login(context.Background(), "exists", "H3Ll0$aM")

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoginSuccess, outcome)
	assert.True(t, api.LoggedIn())
}

func TestAPI_Login_RejectedKeepsNoToken(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.OutcomeResponse{Outcome: models.OutcomeLoginBadIdentifier})
	}))

	outcome, err := api.Login(context.Background(), "ghost", "H3Ll0$aM")

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoginBadIdentifier, outcome)
	assert.False(t, api.LoggedIn())
}

func TestAPI_Login_MalformedAuthorizationHeaderIgnored(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "issued-token-without-scheme")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.OutcomeResponse{Outcome: models.OutcomeLoginSuccess, Ok: true})
	}))

	outcome, err := api.Login(context.Background(), "exists", "H3Ll0$aM")

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoginSuccess, outcome)
	assert.False(t, api.LoggedIn())
}

func TestAPI_ResetPassword_SendsBearerToken(t *testing.T) {
	var seenAuth string
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			w.Header().Set("Authorization", "Bearer issued-token")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.OutcomeResponse{Outcome: models.OutcomeLoginSuccess, Ok: true})
		case "/api/user/reset":
			seenAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.OutcomeResponse{Outcome: models.OutcomeResetSuccess, Ok: true})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	_, err := api.Login(context.Background(), "exists", "H3Ll0$aM")
	require.NoError(t, err)

	outcome, err := api.ResetPassword(context.Background(), models.ResetRequest{
		OldPassword:        "H3Ll0$aM",
		NewPassword:        "N3wP4ss$word",
		RetypedNewPassword: "N3wP4ss$word",
	})

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeResetSuccess, outcome)
	assert.Equal(t, "Bearer issued-token", seenAuth)
}

func TestAPI_Query_Success(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat/query", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChatQueryResponse{Status: "success", Response: "42"})
	}))

	answer, err := api.Query(context.Background(), "what is the answer")

	require.NoError(t, err)
	assert.Equal(t, "42", answer)
}

func TestAPI_Query_ServerMessageBecomesError(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ChatQueryResponse{Status: "error", Message: "a query is already being processed"})
	}))

	_, err := api.Query(context.Background(), "anything")

	require.Error(t, err)
	assert.Equal(t, "a query is already being processed", err.Error())
}

func TestAPI_History(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat/history", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ChatHistoryResponse{
			History: []models.ChatMessage{
				{Role: models.ChatRoleUser, Text: "hello"},
				{Role: models.ChatRoleBot, Text: "hi"},
			},
			Length: 2,
		})
	}))

	history, err := api.History(context.Background())

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChatRoleBot, history[1].Role)
}

func TestAPI_Logout_DropsToken(t *testing.T) {
	api := NewAPI("http://localhost:1", time.Second, logger.Nop())
	api.token = "something"

	require.True(t, api.LoggedIn())
	api.Logout()
	assert.False(t, api.LoggedIn())
}
