// Package handler aggregates the transport handlers of the application.
package handler

import (
	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/handler/http"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
