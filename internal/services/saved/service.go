// Package saved manages the user's saved place list
package saved

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// Service implements saved place management over a storage backend
type Service struct {
	storage interfaces.SavedPlaceStorage
	logger  arbor.ILogger
}

// NewService creates a saved place service
func NewService(storage interfaces.SavedPlaceStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns all saved places in save order
func (s *Service) List(ctx context.Context) ([]models.Place, error) {
	places, err := s.storage.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved places: %w", err)
	}
	return places, nil
}

// Save stores a place. A place without an id gets a generated one; saving an
// existing id replaces that entry, so the list stays deduplicated.
func (s *Service) Save(ctx context.Context, place models.Place) (models.Place, error) {
	if place.ID == "" {
		place.ID = uuid.New().String()
	}

	if err := s.storage.UpsertPlace(ctx, place); err != nil {
		return models.Place{}, fmt.Errorf("failed to save place: %w", err)
	}

	s.logger.Info().
		Str("id", place.ID).
		Str("name", place.Name()).
		Msg("Saved place")
	return place, nil
}

// Remove deletes a saved place by id. Removing an unknown id is not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("place id cannot be empty")
	}
	if err := s.storage.DeletePlace(ctx, id); err != nil {
		return fmt.Errorf("failed to remove place: %w", err)
	}
	return nil
}

// Clear removes every saved place
func (s *Service) Clear(ctx context.Context) error {
	if err := s.storage.ClearPlaces(ctx); err != nil {
		return fmt.Errorf("failed to clear saved places: %w", err)
	}
	return nil
}
