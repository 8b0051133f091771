// Package geo wraps the Google Maps Platform web services: Places API (New)
// for search, autocomplete and details, and the legacy web services for
// geocoding, directions and distance matrices. All requests share one rate
// limiter so bursts from a single chat turn stay inside the configured
// request spacing.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

const (
	defaultPlacesBaseURL = "https://places.googleapis.com/v1"
	defaultMapsBaseURL   = "https://maps.googleapis.com/maps/api"

	searchFieldMask  = "places.id,places.displayName,places.formattedAddress,places.location,places.rating,places.userRatingCount,places.types,places.priceLevel"
	detailsFieldMask = "id,displayName,formattedAddress,location,rating,userRatingCount,types,priceLevel,websiteUri,reviews"
)

// Service implements the GeoService interface against the Google Maps
// Platform. Base URLs are fields so tests can point the client at a local
// server.
type Service struct {
	config        *common.MapsAPIConfig
	logger        arbor.ILogger
	httpClient    *http.Client
	limiter       *rate.Limiter
	placesBaseURL string
	mapsBaseURL   string
}

// NewService creates a new geo service instance
func NewService(config *common.MapsAPIConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter:       rate.NewLimiter(rate.Every(config.RateLimit), 1),
		placesBaseURL: defaultPlacesBaseURL,
		mapsBaseURL:   defaultMapsBaseURL,
	}
}

// Geocode resolves an address string to a coordinate pair. Returns nil when
// the provider finds no match.
func (s *Service) Geocode(ctx context.Context, address, language string) (*interfaces.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	if language != "" {
		params.Set("language", language)
	}

	var resp geocodeResponse
	if err := s.legacyGet(ctx, "/geocode/json", params, &resp); err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		s.logger.Debug().Str("address", address).Msg("Geocode found no results")
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("geocode API error: %s - %s", resp.Status, resp.ErrorMessage)
	}

	first := resp.Results[0]
	return &interfaces.GeocodeResult{
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
		PlaceID:          first.PlaceID,
	}, nil
}

// ReverseGeocode resolves a coordinate pair to an address. Returns nil when
// the provider finds no match.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lng float64, language string) (*interfaces.ReverseGeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	if language != "" {
		params.Set("language", language)
	}

	var resp geocodeResponse
	if err := s.legacyGet(ctx, "/geocode/json", params, &resp); err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("reverse geocode API error: %s - %s", resp.Status, resp.ErrorMessage)
	}

	first := resp.Results[0]
	components := make([]interfaces.AddressComponent, 0, len(first.AddressComponents))
	for _, c := range first.AddressComponents {
		components = append(components, interfaces.AddressComponent{
			LongName:  c.LongName,
			ShortName: c.ShortName,
			Types:     c.Types,
		})
	}

	return &interfaces.ReverseGeocodeResult{
		FormattedAddress:  first.FormattedAddress,
		AddressComponents: components,
		PlaceID:           first.PlaceID,
	}, nil
}

// SearchPlaces performs a Places API text search, optionally biased toward a
// location. When a location is given each result carries its distance from
// that point.
func (s *Service) SearchPlaces(ctx context.Context, query string, location *models.LatLng, language string, radiusMeters int) ([]models.Place, error) {
	request := textSearchRequest{
		TextQuery:      query,
		LanguageCode:   language,
		MaxResultCount: s.config.MaxResultsPerSearch,
	}
	if location != nil {
		request.LocationBias = circleBias(*location, radiusMeters)
	}

	var resp textSearchResponse
	if err := s.placesPost(ctx, "/places:searchText", searchFieldMask, request, &resp); err != nil {
		return nil, fmt.Errorf("place search failed: %w", err)
	}

	places := resp.Places
	if location != nil {
		for i := range places {
			if coord, ok := models.CoordinateOf(&places[i]); ok {
				places[i].Distance = haversineKm(*location, coord)
			}
		}
	}

	sample := make([]string, 0, 3)
	for i := range places {
		if i >= 3 {
			break
		}
		sample = append(sample, places[i].Name())
	}
	s.logger.Info().
		Str("query", query).
		Int("results_count", len(places)).
		Strs("sample_places", sample).
		Msg("Place text search completed")

	return places, nil
}

// SearchCategoryPlaces performs a biased text search for one category and
// filters the results by rating. Places without a rating pass the filter so a
// sparse area still produces suggestions. Each result is tagged with the
// category label and its distance from the search center.
func (s *Service) SearchCategoryPlaces(ctx context.Context, query string, center models.LatLng, radiusMeters int, minRating float64, typeLabel, language string) ([]models.Place, error) {
	request := textSearchRequest{
		TextQuery:      query,
		LanguageCode:   language,
		MaxResultCount: s.config.MaxResultsPerSearch,
		LocationBias:   circleBias(center, radiusMeters),
	}

	var resp textSearchResponse
	if err := s.placesPost(ctx, "/places:searchText", searchFieldMask, request, &resp); err != nil {
		return nil, fmt.Errorf("category search failed: %w", err)
	}

	filtered := make([]models.Place, 0, len(resp.Places))
	for _, place := range resp.Places {
		if minRating > 0 && place.Rating > 0 && place.Rating < minRating {
			continue
		}
		place.Type = typeLabel
		if coord, ok := models.CoordinateOf(&place); ok {
			place.DistanceFromCenter = haversineKm(center, coord)
		}
		filtered = append(filtered, place)
	}

	s.logger.Info().
		Str("query", query).
		Str("type", typeLabel).
		Float64("min_rating", minRating).
		Int("results_count", len(filtered)).
		Int("dropped_count", len(resp.Places)-len(filtered)).
		Msg("Category place search completed")

	return filtered, nil
}

// AutocompletePlaces returns place predictions for a partial input
func (s *Service) AutocompletePlaces(ctx context.Context, input string, location *models.LatLng, language string) ([]interfaces.Suggestion, error) {
	request := autocompleteRequest{
		Input:        input,
		LanguageCode: language,
	}
	if location != nil {
		request.LocationBias = circleBias(*location, 0)
	}

	var resp autocompleteResponse
	if err := s.placesPost(ctx, "/places:autocomplete", "", request, &resp); err != nil {
		return nil, fmt.Errorf("autocomplete failed: %w", err)
	}

	suggestions := make([]interfaces.Suggestion, 0, len(resp.Suggestions))
	for _, entry := range resp.Suggestions {
		if entry.PlacePrediction == nil {
			continue
		}
		suggestions = append(suggestions, interfaces.Suggestion{
			PlaceID: entry.PlacePrediction.PlaceID,
			Text:    entry.PlacePrediction.Text.Text,
		})
	}
	return suggestions, nil
}

// GetPlaceDetails fetches full details for a place id. Returns nil when the
// place does not exist.
func (s *Service) GetPlaceDetails(ctx context.Context, placeID, language string) (*models.Place, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/places/%s", s.placesBaseURL, url.PathEscape(placeID))
	if language != "" {
		endpoint += "?languageCode=" + url.QueryEscape(language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Goog-Api-Key", s.config.APIKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, placesError(resp)
	}

	var place models.Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("failed to decode place details: %w", err)
	}
	return &place, nil
}

// GetDirections computes a single route between two coordinates. Returns nil
// when no route exists for the requested mode.
func (s *Service) GetDirections(ctx context.Context, origin, destination models.LatLng, mode interfaces.TravelMode, language string) (*interfaces.DirectionsResult, error) {
	params := url.Values{}
	params.Set("origin", formatLatLng(origin))
	params.Set("destination", formatLatLng(destination))
	params.Set("mode", string(mode))
	if language != "" {
		params.Set("language", language)
	}

	var resp directionsResponse
	if err := s.legacyGet(ctx, "/directions/json", params, &resp); err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Routes) == 0 {
		s.logger.Debug().
			Str("mode", string(mode)).
			Str("origin", formatLatLng(origin)).
			Str("destination", formatLatLng(destination)).
			Msg("No route found")
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("directions API error: %s - %s", resp.Status, resp.ErrorMessage)
	}

	route := resp.Routes[0]
	result := &interfaces.DirectionsResult{
		Polyline: route.OverviewPolyline.Points,
	}
	if route.Bounds != nil {
		result.Bounds = &models.Bounds{
			Northeast: models.LatLng(route.Bounds.Northeast),
			Southwest: models.LatLng(route.Bounds.Southwest),
		}
	}

	// A waypoint-free request yields one leg; sum anyway so the totals stay
	// correct if waypoints are ever added
	for _, leg := range route.Legs {
		result.DistanceMeters += leg.Distance.Value
		result.DurationSeconds += leg.Duration.Value
	}
	if len(route.Legs) > 0 {
		first := route.Legs[0]
		last := route.Legs[len(route.Legs)-1]
		result.DistanceText = first.Distance.Text
		result.DurationText = first.Duration.Text
		result.StartAddress = first.StartAddress
		result.EndAddress = last.EndAddress
	}

	return result, nil
}

// GetDistanceMatrix computes pairwise travel distances. Elements the provider
// could not resolve are omitted from the result rather than failing the call.
func (s *Service) GetDistanceMatrix(ctx context.Context, origins, destinations []models.LatLng, mode interfaces.TravelMode, language string) ([]interfaces.MatrixEntry, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, fmt.Errorf("origins and destinations cannot be empty")
	}

	params := url.Values{}
	params.Set("origins", joinLatLngs(origins))
	params.Set("destinations", joinLatLngs(destinations))
	params.Set("mode", string(mode))
	if language != "" {
		params.Set("language", language)
	}

	var resp distanceMatrixResponse
	if err := s.legacyGet(ctx, "/distancematrix/json", params, &resp); err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("distance matrix API error: %s - %s", resp.Status, resp.ErrorMessage)
	}

	entries := make([]interfaces.MatrixEntry, 0, len(origins)*len(destinations))
	for i, row := range resp.Rows {
		for j, element := range row.Elements {
			if element.Status != "OK" {
				s.logger.Debug().
					Int("origin_index", i).
					Int("destination_index", j).
					Str("status", element.Status).
					Msg("Skipping unresolved matrix element")
				continue
			}
			entries = append(entries, interfaces.MatrixEntry{
				OriginIndex:      i,
				DestinationIndex: j,
				DistanceText:     element.Distance.Text,
				DistanceMeters:   element.Distance.Value,
				DurationText:     element.Duration.Text,
				DurationSeconds:  element.Duration.Value,
			})
		}
	}

	return entries, nil
}

// placesPost sends a Places API (New) request with the key and field mask
// headers
func (s *Service) placesPost(ctx context.Context, path, fieldMask string, body, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := s.placesBaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.config.APIKey)
	if fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", fieldMask)
	}

	s.logger.Debug().Str("url", endpoint).Msg("Calling Places API")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return placesError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// legacyGet sends a Maps web service request with the key appended as a query
// parameter. The key is redacted from logs.
func (s *Service) legacyGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	logURL := fmt.Sprintf("%s%s?%s&key=***REDACTED***", s.mapsBaseURL, path, params.Encode())
	s.logger.Debug().Str("url", logURL).Msg("Calling Maps web service")

	params.Set("key", s.config.APIKey)
	endpoint := fmt.Sprintf("%s%s?%s", s.mapsBaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// placesError extracts the structured error from a Places API failure
func placesError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr placesErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("Places API error %s: %s", apiErr.Error.Status, apiErr.Error.Message)
	}
	return fmt.Errorf("Places API returned status %d: %s", resp.StatusCode, string(body))
}

// circleBias builds a circular location bias. A non-positive radius falls
// back to 5km.
func circleBias(center models.LatLng, radiusMeters int) *locationBiasWire {
	radius := float64(radiusMeters)
	if radius <= 0 {
		radius = 5000
	}
	// The API caps circle bias radius at 50km
	if radius > 50000 {
		radius = 50000
	}
	return &locationBiasWire{
		Circle: circleWire{
			Center: latLngWire{Latitude: center.Lat, Longitude: center.Lng},
			Radius: radius,
		},
	}
}

func formatLatLng(p models.LatLng) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

func joinLatLngs(points []models.LatLng) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = formatLatLng(p)
	}
	return strings.Join(parts, "|")
}

// haversineKm computes the great-circle distance between two coordinates
func haversineKm(a, b models.LatLng) float64 {
	const earthRadiusKm = 6371.0

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
