package interfaces

import (
	"context"
	"errors"

	"github.com/ksg0322/travel-map/internal/models"
)

// ErrQuotaExceeded is returned by storage implementations when a write does
// not fit the backing store. The conversation memory service reacts by
// retrying once with a halved window.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ConversationStorage persists the bounded conversation log
type ConversationStorage interface {
	LoadMessages(ctx context.Context) ([]models.Message, error)
	SaveMessages(ctx context.Context, messages []models.Message) error
	ClearMessages(ctx context.Context) error
}

// SavedPlaceStorage persists the user-curated place list, deduplicated by id
type SavedPlaceStorage interface {
	ListPlaces(ctx context.Context) ([]models.Place, error)
	UpsertPlace(ctx context.Context, place models.Place) error
	DeletePlace(ctx context.Context, id string) error
	ClearPlaces(ctx context.Context) error
}

// StorageManager owns the storage implementations and their lifecycle
type StorageManager interface {
	ConversationStorage() ConversationStorage
	SavedPlaceStorage() SavedPlaceStorage
	Close() error
}
