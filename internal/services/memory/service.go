// Package memory maintains the rolling conversation window. The window keeps
// the most recent turns so prompts stay bounded, and persistence failures
// degrade the session to memory-only rather than breaking chat.
package memory

import (
	"context"
	"errors"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// MaxMessages is the default conversation window size
const MaxMessages = 20

// reducedMessages is the retry window after a quota failure
const reducedMessages = MaxMessages / 2

// Service implements the conversation memory window over a storage backend
type Service struct {
	storage    interfaces.ConversationStorage
	logger     arbor.ILogger
	maxMessages int
}

// NewService creates a conversation memory service. maxMessages <= 0 uses the
// default window of 20.
func NewService(storage interfaces.ConversationStorage, logger arbor.ILogger, maxMessages int) *Service {
	if maxMessages <= 0 {
		maxMessages = MaxMessages
	}
	return &Service{
		storage:     storage,
		logger:      logger,
		maxMessages: maxMessages,
	}
}

// Load returns the stored conversation trimmed to the window. A read failure
// or corrupt store yields an empty history so the session starts fresh.
func (s *Service) Load(ctx context.Context) []models.Message {
	messages, err := s.storage.LoadMessages(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load conversation history, starting fresh")
		return []models.Message{}
	}
	return trimWindow(messages, s.maxMessages)
}

// Save persists the conversation trimmed to the window. When the store
// rejects the write for size, it retries once with half the window; a second
// failure is logged and swallowed so the chat turn still completes.
func (s *Service) Save(ctx context.Context, messages []models.Message) {
	window := trimWindow(messages, s.maxMessages)

	err := s.storage.SaveMessages(ctx, window)
	if err == nil {
		return
	}

	if errors.Is(err, interfaces.ErrQuotaExceeded) {
		reduced := trimWindow(window, reducedMessages)
		s.logger.Warn().
			Int("window", len(window)).
			Int("reduced_window", len(reduced)).
			Msg("Conversation save exceeded quota, retrying with reduced window")

		if retryErr := s.storage.SaveMessages(ctx, reduced); retryErr == nil {
			return
		} else {
			err = retryErr
		}
	}

	s.logger.Warn().Err(err).Msg("Failed to persist conversation history, continuing in memory only")
}

// AppendTurn loads the current history, appends one user/assistant exchange
// and saves the result. It returns the updated window.
func (s *Service) AppendTurn(ctx context.Context, userText, assistantText string) []models.Message {
	messages := s.Load(ctx)
	messages = append(messages,
		models.NewUserMessage(userText),
		models.NewAssistantMessage(assistantText),
	)
	messages = trimWindow(messages, s.maxMessages)
	s.Save(ctx, messages)
	return messages
}

// Clear removes the stored conversation
func (s *Service) Clear(ctx context.Context) error {
	if err := s.storage.ClearMessages(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("Conversation history cleared")
	return nil
}

// Size returns the number of stored messages within the window
func (s *Service) Size(ctx context.Context) int {
	return len(s.Load(ctx))
}

// trimWindow keeps the most recent limit messages
func trimWindow(messages []models.Message, limit int) []models.Message {
	if limit <= 0 || len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}
