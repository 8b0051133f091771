package agents

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

func testLogger() arbor.ILogger {
	return arbor.NewLogger()
}

// mockLLM implements interfaces.LLMService for testing. Responses are served
// from the queue in order; when the queue is empty completeFunc (if set) is
// used, otherwise a generic reply.
type mockLLM struct {
	configured   bool
	queue        []string
	err          error
	completeFunc func(systemPrompt, message string, history []models.Message) (string, error)
	calls        []string
}

func (m *mockLLM) CompleteChat(ctx context.Context, systemPrompt, message string, history []models.Message) (string, error) {
	m.calls = append(m.calls, systemPrompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	if m.completeFunc != nil {
		return m.completeFunc(systemPrompt, message, history)
	}
	return "알겠습니다.", nil
}

func (m *mockLLM) IsConfigured() bool { return m.configured }

func (m *mockLLM) Close() error { return nil }

// mockGeo implements interfaces.GeoService with per-method hooks
type mockGeo struct {
	directionsFunc     func(origin, destination models.LatLng, mode interfaces.TravelMode) (*interfaces.DirectionsResult, error)
	matrixFunc         func(origins, destinations []models.LatLng) ([]interfaces.MatrixEntry, error)
	reverseGeocodeFunc func(lat, lng float64) (*interfaces.ReverseGeocodeResult, error)
	directionsCalls    int
	matrixCalls        int
}

func (m *mockGeo) Geocode(ctx context.Context, address, language string) (*interfaces.GeocodeResult, error) {
	return nil, nil
}

func (m *mockGeo) ReverseGeocode(ctx context.Context, lat, lng float64, language string) (*interfaces.ReverseGeocodeResult, error) {
	if m.reverseGeocodeFunc != nil {
		return m.reverseGeocodeFunc(lat, lng)
	}
	return nil, nil
}

func (m *mockGeo) SearchPlaces(ctx context.Context, query string, location *models.LatLng, language string, radiusMeters int) ([]models.Place, error) {
	return nil, nil
}

func (m *mockGeo) SearchCategoryPlaces(ctx context.Context, query string, center models.LatLng, radiusMeters int, minRating float64, typeLabel, language string) ([]models.Place, error) {
	return nil, nil
}

func (m *mockGeo) AutocompletePlaces(ctx context.Context, input string, location *models.LatLng, language string) ([]interfaces.Suggestion, error) {
	return nil, nil
}

func (m *mockGeo) GetPlaceDetails(ctx context.Context, placeID, language string) (*models.Place, error) {
	return nil, nil
}

func (m *mockGeo) GetDirections(ctx context.Context, origin, destination models.LatLng, mode interfaces.TravelMode, language string) (*interfaces.DirectionsResult, error) {
	m.directionsCalls++
	if m.directionsFunc != nil {
		return m.directionsFunc(origin, destination, mode)
	}
	return &interfaces.DirectionsResult{
		DistanceText: "5.0 km",
		DurationText: "20분",
		Polyline:     fmt.Sprintf("poly%d", m.directionsCalls),
	}, nil
}

func (m *mockGeo) GetDistanceMatrix(ctx context.Context, origins, destinations []models.LatLng, mode interfaces.TravelMode, language string) ([]interfaces.MatrixEntry, error) {
	m.matrixCalls++
	if m.matrixFunc != nil {
		return m.matrixFunc(origins, destinations)
	}
	return []interfaces.MatrixEntry{}, nil
}

// testPlace builds a saved place with the Places API (New) coordinate shape
func testPlace(id, name string, lat, lng float64) models.Place {
	return models.Place{
		ID:          id,
		DisplayName: models.LocalizedText{Text: name},
		Location:    &models.PlaceLocation{Latitude: lat, Longitude: lng},
	}
}
