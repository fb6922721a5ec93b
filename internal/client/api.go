package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
)

// API is the accountgate HTTP client used by the terminal UI. It keeps the
// session token issued on login/register and attaches it to authenticated
// calls.
type API struct {
	http   *utils.HTTPClient
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

func NewAPI(baseURL string, timeout time.Duration, logger *logger.Logger) *API {
	httpClient := utils.NewHTTPClient()
	httpClient.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &API{http: httpClient, logger: logger}
}

// Login posts the credentials and returns the server's outcome. The session
// token from the Authorization response header is retained on success.
func (a *API) Login(ctx context.Context, identifier, password string) (models.Outcome, error) {
	return a.authCall(ctx, "/api/user/login", models.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
}

// Register posts the signup form and returns the server's outcome. Like
// Login it retains the issued session token on success.
func (a *API) Register(ctx context.Context, req models.SignupRequest) (models.Outcome, error) {
	return a.authCall(ctx, "/api/user/register", req)
}

// ResetPassword posts the password change form on the authenticated route.
func (a *API) ResetPassword(ctx context.Context, req models.ResetRequest) (models.Outcome, error) {
	var result models.OutcomeResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+a.sessionToken()).
		SetBody(req).
		Post("/api/user/reset")
	if err != nil {
		return "", fmt.Errorf("reset request: %w", err)
	}

	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("reset response: %w", err)
	}

	return result.Outcome, nil
}

// Query sends one chat query. On a rejected query the server's message is
// returned as the error text unchanged so the UI can show it to the user.
func (a *API) Query(ctx context.Context, text string) (string, error) {
	var result models.ChatQueryResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ChatQueryRequest{Query: text}).
		Post("/api/chat/query")
	if err != nil {
		return "", fmt.Errorf("query request: %w", err)
	}

	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("query response: %w", err)
	}

	if result.Status != "success" {
		if result.Message != "" {
			return "", errors.New(result.Message)
		}
		return "", fmt.Errorf("query failed with status %d", resp.StatusCode())
	}

	return result.Response, nil
}

// History fetches the full transcript.
func (a *API) History(ctx context.Context) ([]models.ChatMessage, error) {
	var result models.ChatHistoryResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/chat/history")
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("history failed with status %d", resp.StatusCode())
	}

	return result.History, nil
}

// Health probes the server liveness endpoint.
func (a *API) Health(ctx context.Context) error {
	resp, err := a.http.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("health failed with status %d", resp.StatusCode())
	}
	return nil
}

// LoggedIn reports whether a session token has been captured.
func (a *API) LoggedIn() bool {
	return a.sessionToken() != ""
}

// Logout drops the captured session token.
func (a *API) Logout() {
	a.mu.Lock()
	a.token = ""
	a.mu.Unlock()
}

func (a *API) authCall(ctx context.Context, path string, body any) (models.Outcome, error) {
	var result models.OutcomeResponse

	resp, err := a.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("auth request: %w", err)
	}

	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("auth response: %w", err)
	}

	if result.Ok {
		if token, err := utils.ParseBearerToken(resp.Header().Get("Authorization")); err == nil {
			a.mu.Lock()
			a.token = token
			a.mu.Unlock()
		}
	}

	return result.Outcome, nil
}

func (a *API) sessionToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}
