package saved

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/models"
	"github.com/ksg0322/travel-map/internal/storage/memstore"
)

func newTestService() *Service {
	return NewService(memstore.NewPlaceStore(), arbor.NewLogger())
}

func TestSaveGeneratesIDWhenMissing(t *testing.T) {
	service := newTestService()

	stored, err := service.Save(context.Background(), models.Place{
		DisplayName: models.LocalizedText{Text: "광장시장"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
}

func TestSaveDeduplicatesByID(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	place := models.Place{ID: "p1", DisplayName: models.LocalizedText{Text: "경복궁"}}
	_, err := service.Save(ctx, place)
	require.NoError(t, err)

	place.DisplayName.Text = "경복궁 (업데이트)"
	_, err = service.Save(ctx, place)
	require.NoError(t, err)

	places, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "경복궁 (업데이트)", places[0].DisplayName.Text)
}

func TestRemoveAndClear(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Save(ctx, models.Place{ID: "p1"})
	require.NoError(t, err)
	_, err = service.Save(ctx, models.Place{ID: "p2"})
	require.NoError(t, err)

	require.NoError(t, service.Remove(ctx, "p1"))
	places, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "p2", places[0].ID)

	// Removing an unknown id is tolerated
	require.NoError(t, service.Remove(ctx, "missing"))

	require.NoError(t, service.Clear(ctx))
	places, err = service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestRemoveRejectsEmptyID(t *testing.T) {
	service := newTestService()
	assert.Error(t, service.Remove(context.Background(), ""))
}
