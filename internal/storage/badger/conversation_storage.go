package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// conversationKey addresses the single-session conversation log record
const conversationKey = "conversation"

// conversationRecord is the persisted shape of the conversation log
type conversationRecord struct {
	Key       string `badgerhold:"key"`
	Messages  []models.Message
	UpdatedAt time.Time
}

// ConversationStorage implements the ConversationStorage interface for Badger
type ConversationStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewConversationStorage creates a new ConversationStorage instance
func NewConversationStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ConversationStorage {
	return &ConversationStorage{
		db:     db,
		logger: logger,
	}
}

// LoadMessages returns the persisted conversation log, empty when absent
func (s *ConversationStorage) LoadMessages(ctx context.Context) ([]models.Message, error) {
	var record conversationRecord
	err := s.db.Store().Get(conversationKey, &record)
	if err == badgerhold.ErrNotFound {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if record.Messages == nil {
		return []models.Message{}, nil
	}
	return record.Messages, nil
}

// SaveMessages replaces the persisted conversation log
func (s *ConversationStorage) SaveMessages(ctx context.Context, messages []models.Message) error {
	record := conversationRecord{
		Key:       conversationKey,
		Messages:  messages,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Store().Upsert(conversationKey, &record); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// ClearMessages removes the conversation log entirely
func (s *ConversationStorage) ClearMessages(ctx context.Context) error {
	err := s.db.Store().Delete(conversationKey, &conversationRecord{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}
