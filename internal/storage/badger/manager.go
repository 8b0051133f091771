package badger

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
)

// Manager owns the Badger connection and the storage implementations
type Manager struct {
	db           *BadgerDB
	conversation interfaces.ConversationStorage
	places       interfaces.SavedPlaceStorage
	logger       arbor.ILogger
}

// NewManager opens the database and wires the storage implementations
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize badger storage: %w", err)
	}

	return &Manager{
		db:           db,
		conversation: NewConversationStorage(db, logger),
		places:       NewPlaceStorage(db, logger),
		logger:       logger,
	}, nil
}

// ConversationStorage returns the conversation log storage
func (m *Manager) ConversationStorage() interfaces.ConversationStorage {
	return m.conversation
}

// SavedPlaceStorage returns the saved place storage
func (m *Manager) SavedPlaceStorage() interfaces.SavedPlaceStorage {
	return m.places
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
