package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
	"github.com/golang-jwt/jwt/v5"
)

// sessionService issues and validates the HMAC-SHA256 signed JWTs that back
// the authenticated endpoints.
type sessionService struct {
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a [SessionService] with the token parameters
// from cfg. The returned service is safe for concurrent use; all state is
// read-only after construction.
func NewSessionService(cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT whose subject is the user's directory ID.
//
// Returns ErrInvalidDataProvided if the user has no ID.
func (s *sessionService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" {
		log.Error().Msg("cannot issue token for a user without an ID")
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("id", user.ID).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("token generation failed: %w", err)
	}

	return token, nil
}

// ParseToken validates tokenString (signature, issuer, expiry) and returns
// the parsed token with UserID populated.
//
// Returns ErrTokenIsExpired when the only problem is an expired token, so
// handlers can answer 401 with a precise message.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Msg("token validation failed")
		return models.Token{}, fmt.Errorf("token validation failed: %w", err)
	}

	return token, nil
}
