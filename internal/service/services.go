package service

import (
	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/store"
)

// Collaborators bundles the external backends the services depend on.
// Identity and Documents may be nil together to run directory-only.
type Collaborators struct {
	Identity  adapter.IdentityProvider
	Documents adapter.DocumentStore
	Answers   adapter.AnswerService
}

type Services struct {
	Account AccountService
	Session SessionService
	Chat    ChatService
}

func NewServices(storages *store.Storages, collaborators Collaborators, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		Account: NewAccountService(storages.Users, collaborators.Identity, collaborators.Documents, logger),
		Session: NewSessionService(cfg.App, logger),
		Chat:    NewChatService(collaborators.Answers, storages.Transcript, logger),
	}
}
