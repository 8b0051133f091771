package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

func newTestService(placesURL, mapsURL string) *Service {
	config := &common.MapsAPIConfig{
		APIKey:              "test-key",
		RateLimit:           time.Millisecond,
		RequestTimeout:      5 * time.Second,
		MaxResultsPerSearch: 20,
	}
	service := NewService(config, arbor.NewLogger())
	if placesURL != "" {
		service.placesBaseURL = placesURL
	}
	if mapsURL != "" {
		service.mapsBaseURL = mapsURL
	}
	return service
}

func TestSearchPlacesDecodesAndMeasuresDistance(t *testing.T) {
	var gotKey, gotMask string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"places": [
			{"id": "p1", "displayName": {"text": "국립중앙박물관"}, "location": {"latitude": 37.524, "longitude": 126.980}, "rating": 4.7},
			{"id": "p2", "displayName": {"text": "좌표 없는 곳"}}
		]}`))
	}))
	defer server.Close()

	service := newTestService(server.URL, "")
	center := models.LatLng{Lat: 37.5, Lng: 127.0}

	places, err := service.SearchPlaces(context.Background(), "박물관", &center, "ko", 5000)

	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotMask, "places.location")
	assert.Equal(t, "국립중앙박물관", places[0].Name())
	assert.Greater(t, places[0].Distance, 0.0)
	assert.Zero(t, places[1].Distance, "no coordinate means no distance")
}

func TestSearchCategoryPlacesFiltersByRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"places": [
			{"id": "high", "displayName": {"text": "평점 높은 카페"}, "location": {"latitude": 37.51, "longitude": 127.01}, "rating": 4.6},
			{"id": "low", "displayName": {"text": "평점 낮은 카페"}, "location": {"latitude": 37.52, "longitude": 127.02}, "rating": 3.1},
			{"id": "unrated", "displayName": {"text": "신규 카페"}, "location": {"latitude": 37.53, "longitude": 127.03}}
		]}`))
	}))
	defer server.Close()

	service := newTestService(server.URL, "")
	center := models.LatLng{Lat: 37.5, Lng: 127.0}

	places, err := service.SearchCategoryPlaces(context.Background(), "카페", center, 3000, 4.0, "카페", "ko")

	require.NoError(t, err)
	require.Len(t, places, 2, "unrated places pass the filter, low-rated are dropped")
	assert.Equal(t, "high", places[0].ID)
	assert.Equal(t, "unrated", places[1].ID)
	for _, place := range places {
		assert.Equal(t, "카페", place.Type)
		assert.Greater(t, place.DistanceFromCenter, 0.0)
	}
}

func TestGeocodeZeroResultsReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	service := newTestService("", server.URL)

	result, err := service.Geocode(context.Background(), "존재하지 않는 주소", "ko")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReverseGeocodeDecodesComponents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("latlng"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "results": [{
			"formatted_address": "서울특별시 구로구",
			"place_id": "pid",
			"address_components": [{"long_name": "구로구", "short_name": "구로구", "types": ["sublocality"]}]
		}]}`))
	}))
	defer server.Close()

	service := newTestService("", server.URL)

	result, err := service.ReverseGeocode(context.Background(), 37.49, 126.88, "ko")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "서울특별시 구로구", result.FormattedAddress)
	require.Len(t, result.AddressComponents, 1)
	assert.Equal(t, "구로구", result.AddressComponents[0].LongName)
}

func TestGetDirectionsDecodesRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "transit", r.URL.Query().Get("mode"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "routes": [{
			"overview_polyline": {"points": "encoded123"},
			"bounds": {"northeast": {"lat": 37.6, "lng": 127.1}, "southwest": {"lat": 37.4, "lng": 126.9}},
			"legs": [{"distance": {"text": "5.2 km", "value": 5200}, "duration": {"text": "25분", "value": 1500}, "start_address": "A", "end_address": "B"}]
		}]}`))
	}))
	defer server.Close()

	service := newTestService("", server.URL)

	result, err := service.GetDirections(context.Background(),
		models.LatLng{Lat: 37.5, Lng: 127.0}, models.LatLng{Lat: 37.55, Lng: 127.05},
		interfaces.TravelModeTransit, "ko")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "encoded123", result.Polyline)
	assert.Equal(t, 5200, result.DistanceMeters)
	assert.Equal(t, "25분", result.DurationText)
	require.NotNil(t, result.Bounds)
	assert.Equal(t, 37.6, result.Bounds.Northeast.Lat)
}

func TestGetDirectionsNoRouteReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))
	defer server.Close()

	service := newTestService("", server.URL)

	result, err := service.GetDirections(context.Background(),
		models.LatLng{Lat: 37.5, Lng: 127.0}, models.LatLng{Lat: 37.55, Lng: 127.05},
		interfaces.TravelModeTransit, "ko")

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetDistanceMatrixSkipsFailedElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "rows": [
			{"elements": [
				{"status": "OK", "distance": {"text": "0 km", "value": 0}, "duration": {"text": "0분", "value": 0}},
				{"status": "NOT_FOUND"}
			]},
			{"elements": [
				{"status": "OK", "distance": {"text": "7 km", "value": 7000}, "duration": {"text": "30분", "value": 1800}},
				{"status": "OK", "distance": {"text": "0 km", "value": 0}, "duration": {"text": "0분", "value": 0}}
			]}
		]}`))
	}))
	defer server.Close()

	service := newTestService("", server.URL)
	points := []models.LatLng{{Lat: 37.5, Lng: 127.0}, {Lat: 37.55, Lng: 127.05}}

	entries, err := service.GetDistanceMatrix(context.Background(), points, points, interfaces.TravelModeDriving, "ko")

	require.NoError(t, err)
	require.Len(t, entries, 3, "the NOT_FOUND element is omitted")
	assert.Equal(t, 1, entries[1].OriginIndex)
	assert.Equal(t, 0, entries[1].DestinationIndex)
	assert.Equal(t, 7000, entries[1].DistanceMeters)
}

func TestAutocompleteDecodesSuggestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestions": [
			{"placePrediction": {"placeId": "pid1", "text": {"text": "서울역"}}},
			{}
		]}`))
	}))
	defer server.Close()

	service := newTestService(server.URL, "")

	suggestions, err := service.AutocompletePlaces(context.Background(), "서울", nil, "ko")
	require.NoError(t, err)
	require.Len(t, suggestions, 1, "entries without a prediction are skipped")
	assert.Equal(t, "pid1", suggestions[0].PlaceID)
	assert.Equal(t, "서울역", suggestions[0].Text)
}

func TestGetPlaceDetailsNotFoundReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := newTestService(server.URL, "")

	place, err := service.GetPlaceDetails(context.Background(), "missing-id", "ko")
	require.NoError(t, err)
	assert.Nil(t, place)
}

func TestPlacesAPIErrorIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "API key invalid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	service := newTestService(server.URL, "")

	_, err := service.SearchPlaces(context.Background(), "카페", nil, "ko", 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
}
