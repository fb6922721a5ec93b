package store

import (
	"context"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/models"
)

// transcriptRepository persists chat messages in the local SQLite database.
// Messages are returned in arrival order.
type transcriptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTranscriptRepository constructs a [TranscriptRepository] backed by the
// given SQLite connection and ensures the transcript table exists.
func NewTranscriptRepository(ctx context.Context, db *DB, logger *logger.Logger) (TranscriptRepository, error) {
	repo := &transcriptRepository{db: db, logger: logger}

	if err := repo.init(ctx); err != nil {
		logger.Err(err).Str("func", "NewTranscriptRepository").Msg("error initializing transcript table")
		return nil, err
	}

	return repo, nil
}

const createTranscriptTableSQL = `
CREATE TABLE IF NOT EXISTS transcript (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    role TEXT      NOT NULL,
    text TEXT      NOT NULL,
    at   TIMESTAMP NOT NULL
);`

func (r *transcriptRepository) init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTranscriptTableSQL); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// AppendMessage stores one chat message at the end of the transcript.
func (r *transcriptRepository) AppendMessage(ctx context.Context, msg models.ChatMessage) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Insert("transcript").
		Columns("role", "text", "at").
		Values(msg.Role, msg.Text, msg.At).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*transcriptRepository.AppendMessage").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*transcriptRepository.AppendMessage").Msg("error appending message")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// History returns every stored message in insertion order.
func (r *transcriptRepository) History(ctx context.Context) ([]models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	query, _, err := sq.
		Select("role", "text", "at").
		From("transcript").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*transcriptRepository.History").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*transcriptRepository.History").Msg("error querying transcript")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var history []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.Role, &msg.Text, &msg.At); err != nil {
			log.Err(err).Str("func", "*transcriptRepository.History").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		history = append(history, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return history, nil
}

// Clear deletes the full transcript.
func (r *transcriptRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, `DELETE FROM transcript`); err != nil {
		log.Err(err).Str("func", "*transcriptRepository.Clear").Msg("error clearing transcript")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// memoryTranscriptRepository keeps the transcript in process memory. Used when
// no chat database is configured and in tests.
type memoryTranscriptRepository struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewMemoryTranscriptRepository returns an empty in-memory transcript.
func NewMemoryTranscriptRepository() TranscriptRepository {
	return &memoryTranscriptRepository{}
}

func (r *memoryTranscriptRepository) AppendMessage(_ context.Context, msg models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
	return nil
}

func (r *memoryTranscriptRepository) History(_ context.Context) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make([]models.ChatMessage, len(r.messages))
	copy(history, r.messages)
	return history, nil
}

func (r *memoryTranscriptRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = nil
	return nil
}
