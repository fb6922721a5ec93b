package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelasq/accountgate/internal/mock"
	"github.com/avelasq/accountgate/internal/service"
	"github.com/avelasq/accountgate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatQuery_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	reply := models.ChatMessage{Role: models.ChatRoleBot, Text: "42", At: time.Now()}
	chat.EXPECT().SendQuery(gomock.Any(), "what is the answer").Return(reply, nil)

	// Act
	rr := postJSON(t, h.chatQuery, "/api/chat/query", models.ChatQueryRequest{Query: "what is the answer"})

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.ChatQueryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "42", resp.Response)
	assert.Empty(t, resp.Message)
}

func TestChatQuery_Busy(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().SendQuery(gomock.Any(), gomock.Any()).Return(models.ChatMessage{}, service.ErrChatBusy)

	rr := postJSON(t, h.chatQuery, "/api/chat/query", models.ChatQueryRequest{Query: "anything"})

	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp models.ChatQueryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, service.ErrChatBusy.Error(), resp.Message)
}

func TestChatQuery_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "empty query", err: service.ErrEmptyQuery},
		{name: "query too long", err: service.ErrQueryTooLong},
		{name: "query not printable", err: service.ErrQueryNotPrintable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			chat := mock.NewMockChatService(ctrl)
			h := newHandlerWithServices(&service.Services{Chat: chat})

			chat.EXPECT().SendQuery(gomock.Any(), gomock.Any()).Return(models.ChatMessage{}, tt.err)

			rr := postJSON(t, h.chatQuery, "/api/chat/query", models.ChatQueryRequest{Query: "q"})

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp models.ChatQueryResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.err.Error(), resp.Message)
		})
	}
}

func TestChatQuery_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().SendQuery(gomock.Any(), gomock.Any()).Return(models.ChatMessage{}, assert.AnError)

	rr := postJSON(t, h.chatQuery, "/api/chat/query", models.ChatQueryRequest{Query: "q"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestChatHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Text: "hello"},
		{Role: models.ChatRoleBot, Text: "hi"},
	}
	chat.EXPECT().History(gomock.Any()).Return(history, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.chatHistory(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.ChatHistoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Length)
	require.Len(t, resp.History, 2)
	assert.Equal(t, models.ChatRoleUser, resp.History[0].Role)
	assert.Equal(t, "hello", resp.History[0].Text)
}

func TestChatHistory_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().History(gomock.Any()).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.chatHistory(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestChatClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().ClearHistory(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/history", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.chatClear(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
}

func TestChatClear_Busy(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().ClearHistory(gomock.Any()).Return(service.ErrChatBusy)

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/history", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.chatClear(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp models.ChatQueryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, service.ErrChatBusy.Error(), resp.Message)
}

func TestChatClear_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	chat := mock.NewMockChatService(ctrl)
	h := newHandlerWithServices(&service.Services{Chat: chat})

	chat.EXPECT().ClearHistory(gomock.Any()).Return(assert.AnError)

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/history", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.chatClear(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHealth(t *testing.T) {
	h := newHandlerWithServices(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req = injectNopLogger(req)
	rr := httptest.NewRecorder()
	h.health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}
