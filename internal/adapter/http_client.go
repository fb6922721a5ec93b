package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
)

type httpAnswerService struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAnswerService constructs an HTTP/REST implementation of
// [AnswerService]. It normalises and validates the base URL from
// cfg.BaseURL and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPAnswerService(cfg config.Answer, logger *logger.Logger) (AnswerService, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid answer service base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpAnswerService{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Query implements [AnswerService]. It POSTs the question to POST /api/query
// and returns the generated answer text. When the backend reports a failure
// with a message payload, that message becomes the error text unchanged so
// callers can show it to the user.
func (h *httpAnswerService) Query(ctx context.Context, query string) (string, error) {
	var result struct {
		Status   string `json:"status"`
		Response string `json:"response"`
		Message  string `json:"message"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ChatQueryRequest{Query: query}).
		SetResult(&result).
		Post("/api/query")
	if err != nil {
		return "", fmt.Errorf("query request: %w", err)
	}

	if resp.IsError() {
		if msg := extractMessage(resp.Body()); msg != "" {
			return "", errors.New(msg)
		}
		return "", mapHTTPError(resp)
	}

	return result.Response, nil
}

// History implements [AnswerService]. It GETs the transcript the backend
// keeps on its side from GET /api/history.
func (h *httpAnswerService) History(ctx context.Context) ([]models.ChatMessage, error) {
	var result struct {
		History []struct {
			Role      string `json:"role"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		} `json:"history"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/history")
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	history := make([]models.ChatMessage, 0, len(result.History))
	for _, m := range result.History {
		msg := models.ChatMessage{
			Role: models.ChatRole(m.Role),
			Text: m.Content,
		}
		if at, err := time.Parse(time.RFC3339, m.Timestamp); err == nil {
			msg.At = at
		}
		history = append(history, msg)
	}

	return history, nil
}

// Initialize implements [AnswerService]. It POSTs to POST /api/initialize to
// trigger a backend index rebuild.
func (h *httpAnswerService) Initialize(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/initialize")
	if err != nil {
		return fmt.Errorf("initialize request: %w", err)
	}

	return mapHTTPError(resp)
}

// Health implements [AnswerService]. It GETs the backend liveness endpoint
// GET /api/health.
func (h *httpAnswerService) Health(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}
