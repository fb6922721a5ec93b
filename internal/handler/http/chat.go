package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/service"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
)

func (h *Handler) chatQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ChatQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	reply, err := h.services.Chat.SendQuery(ctx, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatBusy):
			log.Info().Msg("chat query rejected: busy")
			utils.WriteJSON(w, models.ChatQueryResponse{Status: "error", Message: err.Error()}, http.StatusConflict)
			return
		case errors.Is(err, service.ErrEmptyQuery),
			errors.Is(err, service.ErrQueryTooLong),
			errors.Is(err, service.ErrQueryNotPrintable):
			log.Info().Err(err).Msg("chat query rejected")
			utils.WriteJSON(w, models.ChatQueryResponse{Status: "error", Message: err.Error()}, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during chat query")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.ChatQueryResponse{Status: "success", Response: reply.Text}, http.StatusOK)
}

func (h *Handler) chatHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	history, err := h.services.Chat.History(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during history retrieval")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.ChatHistoryResponse{History: history, Length: len(history)}, http.StatusOK)
}

func (h *Handler) chatClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.Chat.ClearHistory(ctx); err != nil {
		if errors.Is(err, service.ErrChatBusy) {
			log.Info().Msg("chat clear rejected: busy")
			utils.WriteJSON(w, models.ChatQueryResponse{Status: "error", Message: err.Error()}, http.StatusConflict)
			return
		}
		log.Err(err).Msg("unexpected error occurred during history clearing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{Status: "healthy"}, http.StatusOK)
}
