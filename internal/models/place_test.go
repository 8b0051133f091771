package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateNormalizationAcrossEncodings(t *testing.T) {
	// The same numeric values arrive in both wire encodings
	newEncoding := []byte(`{"id": "p1", "location": {"latitude": 37.5, "longitude": 127.0}}`)
	legacyEncoding := []byte(`{"id": "p1", "location": {"lat": 37.5, "lng": 127.0}}`)

	var fromNew, fromLegacy Place
	require.NoError(t, json.Unmarshal(newEncoding, &fromNew))
	require.NoError(t, json.Unmarshal(legacyEncoding, &fromLegacy))

	coordNew, okNew := CoordinateOf(&fromNew)
	coordLegacy, okLegacy := CoordinateOf(&fromLegacy)

	require.True(t, okNew)
	require.True(t, okLegacy)
	assert.Equal(t, coordNew, coordLegacy)
	assert.Equal(t, LatLng{Lat: 37.5, Lng: 127.0}, coordNew)
}

func TestPlaceLocationMarshalEmitsNewEncoding(t *testing.T) {
	encoded, err := json.Marshal(PlaceLocation{Latitude: 37.5, Longitude: 127.0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude": 37.5, "longitude": 127.0}`, string(encoded))
}

func TestCoordinateOfExcludesInvalidPlaces(t *testing.T) {
	tests := []struct {
		name  string
		place *Place
	}{
		{"nil place", nil},
		{"no location", &Place{ID: "p"}},
		{"NaN latitude", &Place{Location: &PlaceLocation{Latitude: math.NaN(), Longitude: 127.0}}},
		{"infinite longitude", &Place{Location: &PlaceLocation{Latitude: 37.5, Longitude: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CoordinateOf(tt.place)
			assert.False(t, ok)
		})
	}
}

func TestPlaceNameFallsBackToAddress(t *testing.T) {
	withName := Place{DisplayName: LocalizedText{Text: "남산타워"}, FormattedAddress: "서울 용산구"}
	assert.Equal(t, "남산타워", withName.Name())

	withoutName := Place{FormattedAddress: "서울 용산구"}
	assert.Equal(t, "서울 용산구", withoutName.Name())
}

func TestLocationHasCoordinates(t *testing.T) {
	var nilLocation *Location
	assert.False(t, nilLocation.HasCoordinates())

	assert.True(t, (&Location{Lat: 37.5, Lng: 127.0}).HasCoordinates())
	assert.False(t, (&Location{Lat: math.NaN(), Lng: 127.0}).HasCoordinates())
}
