package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdUser, outcome := h.services.Account.Signup(ctx, req)
	if !outcome.OK() {
		log.Info().Str("outcome", outcome.String()).Msg("signup rejected")
		utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome}, signupStatus(outcome))
		return
	}

	token, err := h.services.Session.CreateToken(ctx, createdUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("id", createdUser.ID).Str("username", createdUser.Username).Msg("user successfully registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome, Ok: true}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, outcome := h.services.Account.Login(ctx, req)
	if !outcome.OK() {
		log.Info().Str("outcome", outcome.String()).Msg("login rejected")
		utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome}, http.StatusUnauthorized)
		return
	}

	token, err := h.services.Session.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("id", foundUser.ID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome, Ok: true}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	outcome := h.services.Account.ResetPassword(ctx, req)
	if !outcome.OK() {
		log.Info().Str("outcome", outcome.String()).Msg("password reset rejected")
		utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome}, resetStatus(outcome))
		return
	}

	utils.WriteJSON(w, models.OutcomeResponse{Outcome: outcome, Ok: true}, http.StatusOK)
}

func signupStatus(outcome models.Outcome) int {
	if outcome == models.OutcomeSignupUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

func resetStatus(outcome models.Outcome) int {
	if outcome == models.OutcomeResetUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}
