package main

import (
	"context"
	"fmt"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/handler"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/server"
	"github.com/avelasq/accountgate/internal/service"
	"github.com/avelasq/accountgate/internal/store"
	"github.com/avelasq/accountgate/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("accountgate-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	collaborators := service.Collaborators{
		Identity:  adapter.NewMemoryIdentityProvider(log),
		Documents: adapter.NewMemoryDocumentStore(log),
	}
	if cfg.Answer.BaseURL != "" {
		answers, err := adapter.NewHTTPAnswerService(cfg.Answer, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating answer service client")
		}
		collaborators.Answers = answers
	}

	services := service.NewServices(storages, collaborators, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers := workers.NewWorkers(collaborators.Answers, *cfg, log)
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
