package models

import "encoding/json"

// PlaceLocation is the coordinate pair attached to a place. The Places API
// (New) encodes it as {latitude, longitude} while the Maps JavaScript results
// and older payloads use {lat, lng}; both decode into the same struct so the
// reconciliation happens exactly once, at the JSON boundary.
type PlaceLocation struct {
	Latitude  float64
	Longitude float64
}

type placeLocationWire struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
}

// UnmarshalJSON accepts both coordinate encodings
func (l *PlaceLocation) UnmarshalJSON(data []byte) error {
	var wire placeLocationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.Latitude != nil && wire.Longitude != nil:
		l.Latitude = *wire.Latitude
		l.Longitude = *wire.Longitude
	case wire.Lat != nil && wire.Lng != nil:
		l.Latitude = *wire.Lat
		l.Longitude = *wire.Lng
	}
	return nil
}

// MarshalJSON always emits the Places API (New) encoding
func (l PlaceLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{Latitude: l.Latitude, Longitude: l.Longitude})
}

// LocalizedText mirrors the Places API (New) displayName shape
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// PlaceReview is a single user review attached to place details
type PlaceReview struct {
	Text   LocalizedText `json:"text,omitempty"`
	Rating float64       `json:"rating,omitempty"`
}

// Place represents a search result or saved place
type Place struct {
	ID                 string         `json:"id"`
	DisplayName        LocalizedText  `json:"displayName"`
	FormattedAddress   string         `json:"formattedAddress,omitempty"`
	Location           *PlaceLocation `json:"location,omitempty"`
	Rating             float64        `json:"rating,omitempty"`
	UserRatingCount    int            `json:"userRatingCount,omitempty"`
	Type               string         `json:"type,omitempty"`
	Types              []string       `json:"types,omitempty"`
	PriceLevel         string         `json:"priceLevel,omitempty"`
	WebsiteURI         string         `json:"websiteUri,omitempty"`
	Reviews            []PlaceReview  `json:"reviews,omitempty"`
	Distance           float64        `json:"distance,omitempty"`
	DistanceFromCenter float64        `json:"distanceFromCenter,omitempty"`
}

// Name returns the display name, falling back to the formatted address
func (p *Place) Name() string {
	if p.DisplayName.Text != "" {
		return p.DisplayName.Text
	}
	return p.FormattedAddress
}

// CoordinateOf extracts the normalized coordinate pair of a place. It is the
// single extraction point all consumers must use; places without a finite
// coordinate pair report ok=false and are excluded from routing.
func CoordinateOf(p *Place) (LatLng, bool) {
	if p == nil || p.Location == nil {
		return LatLng{}, false
	}
	if !isFinite(p.Location.Latitude) || !isFinite(p.Location.Longitude) {
		return LatLng{}, false
	}
	return LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude}, true
}
