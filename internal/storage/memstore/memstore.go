// Package memstore provides in-memory storage implementations. They back the
// test suites and any session that runs without a persistent database.
package memstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// ConversationStore is an in-memory ConversationStorage. QuotaBytes, when
// positive, bounds the JSON-encoded size of a save and makes oversized writes
// fail with ErrQuotaExceeded, mirroring a full local store.
type ConversationStore struct {
	mu         sync.Mutex
	messages   []models.Message
	QuotaBytes int
	SaveCalls  int
}

// NewConversationStore creates an empty in-memory conversation store
func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// LoadMessages returns a copy of the stored messages
func (s *ConversationStore) LoadMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// SaveMessages replaces the stored messages, enforcing the quota if set
func (s *ConversationStore) SaveMessages(ctx context.Context, messages []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SaveCalls++

	if s.QuotaBytes > 0 {
		encoded, err := json.Marshal(messages)
		if err != nil {
			return err
		}
		if len(encoded) > s.QuotaBytes {
			return interfaces.ErrQuotaExceeded
		}
	}

	s.messages = make([]models.Message, len(messages))
	copy(s.messages, messages)
	return nil
}

// ClearMessages removes all stored messages
func (s *ConversationStore) ClearMessages(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	return nil
}

// PlaceStore is an in-memory SavedPlaceStorage deduplicated by place id
type PlaceStore struct {
	mu     sync.Mutex
	places map[string]models.Place
	order  []string
}

// NewPlaceStore creates an empty in-memory place store
func NewPlaceStore() *PlaceStore {
	return &PlaceStore{places: make(map[string]models.Place)}
}

// ListPlaces returns the saved places in insertion order
func (s *PlaceStore) ListPlaces(ctx context.Context) ([]models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Place, 0, len(s.places))
	for _, id := range s.order {
		if place, ok := s.places[id]; ok {
			out = append(out, place)
		}
	}
	return out, nil
}

// UpsertPlace inserts or replaces a place by id
func (s *PlaceStore) UpsertPlace(ctx context.Context, place models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.places[place.ID]; !exists {
		s.order = append(s.order, place.ID)
	}
	s.places[place.ID] = place
	return nil
}

// DeletePlace removes a place by id
func (s *PlaceStore) DeletePlace(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.places, id)
	for idx, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
	return nil
}

// ClearPlaces removes all saved places
func (s *PlaceStore) ClearPlaces(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places = make(map[string]models.Place)
	s.order = nil
	return nil
}

// Manager bundles the in-memory stores behind the StorageManager interface
type Manager struct {
	conversation *ConversationStore
	places       *PlaceStore
}

// NewManager creates an in-memory storage manager
func NewManager() *Manager {
	return &Manager{
		conversation: NewConversationStore(),
		places:       NewPlaceStore(),
	}
}

// ConversationStorage returns the in-memory conversation store
func (m *Manager) ConversationStorage() interfaces.ConversationStorage {
	return m.conversation
}

// SavedPlaceStorage returns the in-memory place store
func (m *Manager) SavedPlaceStorage() interfaces.SavedPlaceStorage {
	return m.places
}

// Close is a no-op for the in-memory manager
func (m *Manager) Close() error {
	return nil
}
