package store

import (
	"context"

	"github.com/avelasq/accountgate/internal/config"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/migrations"
)

// Storages aggregates every repository the services depend on.
type Storages struct {
	Users      UserRepository
	Transcript TranscriptRepository
}

// NewStorages wires the repositories according to the storage configuration.
//
// With an empty database DSN the user directory is an in-memory one seeded
// with the demo record, which keeps the server runnable with no external
// dependencies. With a DSN set, a PostgreSQL connection is opened and the
// schema migrations are applied before the repository is handed out.
//
// The chat transcript works the same way: an empty chat DSN selects the
// in-memory transcript, otherwise a local SQLite file is used.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	if cfg.DB.DSN == "" {
		log.Info().Str("func", "NewStorages").Msg("no database DSN configured, using seeded in-memory user directory")
		storages.Users = NewMemoryUserRepository(DemoSeed(), log)
	} else {
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err = migrations.Migrate(db.DB, log); err != nil {
			return nil, err
		}
		storages.Users = NewUserRepository(db, log)
	}

	if cfg.ChatDB.DSN == "" {
		storages.Transcript = NewMemoryTranscriptRepository()
		return storages, nil
	}

	chatDB, err := NewConnectSQLite(ctx, cfg.ChatDB, log)
	if err != nil {
		return nil, err
	}

	transcript, err := NewTranscriptRepository(ctx, chatDB, log)
	if err != nil {
		return nil, err
	}
	storages.Transcript = transcript

	return storages, nil
}
