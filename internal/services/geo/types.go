package geo

import "github.com/ksg0322/travel-map/internal/models"

// ---- Places API (New) wire types ----

// latLngWire is the {latitude, longitude} pair used by the Places API (New)
type latLngWire struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circleWire struct {
	Center latLngWire `json:"center"`
	Radius float64    `json:"radius"`
}

type locationBiasWire struct {
	Circle circleWire `json:"circle"`
}

type textSearchRequest struct {
	TextQuery      string            `json:"textQuery"`
	LanguageCode   string            `json:"languageCode,omitempty"`
	MaxResultCount int               `json:"maxResultCount,omitempty"`
	LocationBias   *locationBiasWire `json:"locationBias,omitempty"`
}

// textSearchResponse decodes directly into the place model; the model's
// location type accepts the {latitude, longitude} encoding
type textSearchResponse struct {
	Places []models.Place `json:"places"`
}

type autocompleteRequest struct {
	Input        string            `json:"input"`
	LanguageCode string            `json:"languageCode,omitempty"`
	LocationBias *locationBiasWire `json:"locationBias,omitempty"`
}

type autocompleteResponse struct {
	Suggestions []autocompleteSuggestion `json:"suggestions"`
}

type autocompleteSuggestion struct {
	PlacePrediction *placePrediction `json:"placePrediction,omitempty"`
}

type placePrediction struct {
	PlaceID string `json:"placeId"`
	Text    struct {
		Text string `json:"text"`
	} `json:"text"`
}

type placesErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ---- Legacy Maps web service wire types ----

type legacyLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type legacyBounds struct {
	Northeast legacyLatLng `json:"northeast"`
	Southwest legacyLatLng `json:"southwest"`
}

type geocodeResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Results      []geocodeEntry `json:"results"`
}

type geocodeEntry struct {
	FormattedAddress  string                    `json:"formatted_address"`
	PlaceID           string                    `json:"place_id"`
	AddressComponents []geocodeAddressComponent `json:"address_components,omitempty"`
	Geometry          struct {
		Location legacyLatLng `json:"location"`
	} `json:"geometry"`
}

type geocodeAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type valueText struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type directionsResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Routes       []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	OverviewPolyline struct {
		Points string `json:"points"`
	} `json:"overview_polyline"`
	Bounds *legacyBounds   `json:"bounds,omitempty"`
	Legs   []directionsLeg `json:"legs"`
}

type directionsLeg struct {
	Distance     valueText `json:"distance"`
	Duration     valueText `json:"duration"`
	StartAddress string    `json:"start_address,omitempty"`
	EndAddress   string    `json:"end_address,omitempty"`
}

type distanceMatrixResponse struct {
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Rows         []distanceMatrixRow `json:"rows"`
}

type distanceMatrixRow struct {
	Elements []distanceMatrixElement `json:"elements"`
}

type distanceMatrixElement struct {
	Status   string    `json:"status"`
	Distance valueText `json:"distance"`
	Duration valueText `json:"duration"`
}
