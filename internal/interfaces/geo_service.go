package interfaces

import (
	"context"

	"github.com/ksg0322/travel-map/internal/models"
)

// TravelMode selects how legs and matrices are computed
type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"
)

// GeocodeResult is the outcome of a forward geocoding lookup
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formattedAddress"`
	PlaceID          string  `json:"placeId"`
}

// AddressComponent is one structured part of a geocoded address
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// ReverseGeocodeResult is the outcome of a coordinate-to-address lookup
type ReverseGeocodeResult struct {
	FormattedAddress  string             `json:"formattedAddress"`
	AddressComponents []AddressComponent `json:"addressComponents,omitempty"`
	PlaceID           string             `json:"placeId"`
}

// DirectionsResult describes a single origin-to-destination route
type DirectionsResult struct {
	DistanceText    string         `json:"distanceText"`
	DistanceMeters  int            `json:"distanceMeters"`
	DurationText    string         `json:"durationText"`
	DurationSeconds int            `json:"durationSeconds"`
	Polyline        string         `json:"polyline"`
	StartAddress    string         `json:"startAddress,omitempty"`
	EndAddress      string         `json:"endAddress,omitempty"`
	Bounds          *models.Bounds `json:"bounds,omitempty"`
}

// MatrixEntry is one flattened element of a distance-matrix response.
// Elements whose upstream status is not OK are omitted entirely.
type MatrixEntry struct {
	OriginIndex      int    `json:"originIndex"`
	DestinationIndex int    `json:"destinationIndex"`
	DistanceText     string `json:"distanceText"`
	DistanceMeters   int    `json:"distanceMeters"`
	DurationText     string `json:"durationText"`
	DurationSeconds  int    `json:"durationSeconds"`
}

// Suggestion is a single autocomplete proposal
type Suggestion struct {
	PlaceID string `json:"placeId"`
	Text    string `json:"text"`
}

// GeoService wraps the mapping provider's geocoding, place search, directions
// and distance-matrix endpoints. Lookup operations return nil (not an error)
// when the provider finds nothing; errors indicate transport or API failures.
type GeoService interface {
	Geocode(ctx context.Context, address, language string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64, language string) (*ReverseGeocodeResult, error)

	SearchPlaces(ctx context.Context, query string, location *models.LatLng, language string, radiusMeters int) ([]models.Place, error)
	SearchCategoryPlaces(ctx context.Context, query string, center models.LatLng, radiusMeters int, minRating float64, typeLabel, language string) ([]models.Place, error)
	AutocompletePlaces(ctx context.Context, input string, location *models.LatLng, language string) ([]Suggestion, error)
	GetPlaceDetails(ctx context.Context, placeID, language string) (*models.Place, error)

	GetDirections(ctx context.Context, origin, destination models.LatLng, mode TravelMode, language string) (*DirectionsResult, error)
	GetDistanceMatrix(ctx context.Context, origins, destinations []models.LatLng, mode TravelMode, language string) ([]MatrixEntry, error)
}
