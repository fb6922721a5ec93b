package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avelasq/accountgate/internal/adapter"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/store"
	"github.com/avelasq/accountgate/internal/validators"
	"github.com/avelasq/accountgate/models"
)

// answerPlaceholder is stored when the answer backend returns an empty
// response body without reporting an error.
const answerPlaceholder = "Failed to get response from AI"

// chatService is the concrete implementation of [ChatService].
//
// A mutex-guarded busy flag enforces the single-in-flight invariant: a
// query arriving while another is being answered is rejected with
// [ErrChatBusy] before anything is written. Validation also happens before
// the transcript is touched, so every rejection leaves state exactly as it
// was.
type chatService struct {
	answers    adapter.AnswerService
	transcript store.TranscriptRepository
	logger     *logger.Logger

	mu   sync.Mutex
	busy bool
}

// NewChatService constructs a [ChatService] dispatching to the given answer
// backend and persisting the transcript in the given repository.
func NewChatService(answers adapter.AnswerService, transcript store.TranscriptRepository, logger *logger.Logger) ChatService {
	return &chatService{
		answers:    answers,
		transcript: transcript,
		logger:     logger,
	}
}

// SendQuery runs one chat turn.
//
// The raw input is trimmed, then rejected if the controller is busy, the
// trimmed text is empty, longer than validators.MaxChatQueryLen, or contains
// anything outside printable ASCII. An accepted query is appended to the
// transcript, dispatched to the answer backend, and the answer (or the
// failure text) is appended and returned.
func (c *chatService) SendQuery(ctx context.Context, text string) (models.ChatMessage, error) {
	log := logger.FromContext(ctx)

	trimmed := strings.TrimSpace(text)

	if err := c.acquire(trimmed); err != nil {
		return models.ChatMessage{}, err
	}
	defer c.release()

	userMsg := models.ChatMessage{
		Role: models.ChatRoleUser,
		Text: trimmed,
		At:   time.Now(),
	}
	if err := c.transcript.AppendMessage(ctx, userMsg); err != nil {
		log.Err(err).Msg("appending user message failed")
		return models.ChatMessage{}, err
	}

	answer, err := c.answers.Query(ctx, trimmed)
	var reply string
	switch {
	case err != nil:
		log.Err(err).Msg("answer backend query failed")
		reply = "Error: " + err.Error()
	case answer == "":
		reply = answerPlaceholder
	default:
		reply = answer
	}

	botMsg := models.ChatMessage{
		Role: models.ChatRoleBot,
		Text: reply,
		At:   time.Now(),
	}
	if err := c.transcript.AppendMessage(ctx, botMsg); err != nil {
		log.Err(err).Msg("appending answer message failed")
		return models.ChatMessage{}, err
	}

	return botMsg, nil
}

// History returns the full transcript in arrival order.
func (c *chatService) History(ctx context.Context) ([]models.ChatMessage, error) {
	return c.transcript.History(ctx)
}

// ClearHistory wipes the transcript. The controller is held busy for the
// duration so a clear never interleaves with an in-flight turn.
func (c *chatService) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrChatBusy
	}
	c.busy = true
	c.mu.Unlock()
	defer c.release()

	return c.transcript.Clear(ctx)
}

// acquire flips the controller to busy after checking the turn invariants.
// The order matters: a busy controller rejects before validation, and a
// validation failure never marks the controller busy.
func (c *chatService) acquire(trimmed string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrChatBusy
	}

	if trimmed == "" {
		return ErrEmptyQuery
	}
	if len(trimmed) > validators.MaxChatQueryLen {
		return ErrQueryTooLong
	}
	if !validators.ValidateChatQuery(trimmed) {
		return ErrQueryNotPrintable
	}

	c.busy = true
	return nil
}

func (c *chatService) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}
