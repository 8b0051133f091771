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

// savedPlaceRecord is the persisted shape of one saved place. Keying by the
// place id makes the set naturally deduplicated.
type savedPlaceRecord struct {
	ID      string `badgerhold:"key"`
	Place   models.Place
	SavedAt time.Time
}

// PlaceStorage implements the SavedPlaceStorage interface for Badger
type PlaceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPlaceStorage creates a new PlaceStorage instance
func NewPlaceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SavedPlaceStorage {
	return &PlaceStorage{
		db:     db,
		logger: logger,
	}
}

// ListPlaces returns all saved places ordered by save time
func (s *PlaceStorage) ListPlaces(ctx context.Context) ([]models.Place, error) {
	var records []savedPlaceRecord
	err := s.db.Store().Find(&records, badgerhold.Where("ID").Ne("").SortBy("SavedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list saved places: %w", err)
	}

	places := make([]models.Place, 0, len(records))
	for _, record := range records {
		places = append(places, record.Place)
	}
	return places, nil
}

// UpsertPlace inserts or replaces a saved place by id
func (s *PlaceStorage) UpsertPlace(ctx context.Context, place models.Place) error {
	if place.ID == "" {
		return fmt.Errorf("place id cannot be empty")
	}

	record := savedPlaceRecord{
		ID:      place.ID,
		Place:   place,
		SavedAt: time.Now(),
	}

	// Preserve the original save time on re-save
	var existing savedPlaceRecord
	if err := s.db.Store().Get(place.ID, &existing); err == nil {
		record.SavedAt = existing.SavedAt
	}

	if err := s.db.Store().Upsert(place.ID, &record); err != nil {
		return fmt.Errorf("failed to save place: %w", err)
	}
	return nil
}

// DeletePlace removes a saved place by id
func (s *PlaceStorage) DeletePlace(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &savedPlaceRecord{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	return nil
}

// ClearPlaces removes all saved places
func (s *PlaceStorage) ClearPlaces(ctx context.Context) error {
	var records []savedPlaceRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return fmt.Errorf("failed to list saved places for deletion: %w", err)
	}

	for _, record := range records {
		if err := s.db.Store().Delete(record.ID, &savedPlaceRecord{}); err != nil {
			s.logger.Warn().Str("id", record.ID).Err(err).Msg("Failed to delete place during ClearPlaces")
		}
	}

	s.logger.Info().Int("count", len(records)).Msg("Deleted all saved places")
	return nil
}
