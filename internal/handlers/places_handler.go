package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
	"github.com/ksg0322/travel-map/internal/services/saved"
)

// PlacesHandler handles saved place management and place lookups
type PlacesHandler struct {
	geo        interfaces.GeoService
	saved      *saved.Service
	chatConfig *common.ChatConfig
	logger     arbor.ILogger
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(
	geo interfaces.GeoService,
	savedService *saved.Service,
	chatConfig *common.ChatConfig,
	logger arbor.ILogger,
) *PlacesHandler {
	return &PlacesHandler{
		geo:        geo,
		saved:      savedService,
		chatConfig: chatConfig,
		logger:     logger,
	}
}

// SavedPlacesHandler handles GET/POST/DELETE /api/places/saved requests
func (h *PlacesHandler) SavedPlacesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		places, err := h.saved.List(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to list saved places")
			WriteError(w, http.StatusInternalServerError, "Failed to list saved places")
			return
		}
		if places == nil {
			places = []models.Place{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"places": places})

	case http.MethodPost:
		var place models.Place
		if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		stored, err := h.saved.Save(ctx, place)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to save place")
			WriteError(w, http.StatusInternalServerError, "Failed to save place")
			return
		}
		WriteJSON(w, http.StatusOK, stored)

	case http.MethodDelete:
		if err := h.saved.Clear(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Failed to clear saved places")
			WriteError(w, http.StatusInternalServerError, "Failed to clear saved places")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// SavedPlaceHandler handles DELETE /api/places/saved/{id} requests
func (h *PlacesHandler) SavedPlaceHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/places/saved/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Place id is required")
		return
	}

	if err := h.saved.Remove(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to remove saved place")
		WriteError(w, http.StatusInternalServerError, "Failed to remove place")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// SearchHandler handles GET /api/places/search requests
func (h *PlacesHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.chatConfig.Language
	}

	location := parseLatLng(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	radiusMeters := parseInt(r.URL.Query().Get("radius"), int(h.chatConfig.DefaultRadiusKm*1000))

	places, err := h.geo.SearchPlaces(r.Context(), query, location, language, radiusMeters)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Place search failed")
		WriteError(w, http.StatusBadGateway, "Place search failed")
		return
	}
	if places == nil {
		places = []models.Place{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"places": places})
}

// AutocompleteHandler handles GET /api/places/autocomplete requests
func (h *PlacesHandler) AutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	input := r.URL.Query().Get("input")
	if input == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'input' is required")
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.chatConfig.Language
	}
	location := parseLatLng(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))

	suggestions, err := h.geo.AutocompletePlaces(r.Context(), input, location, language)
	if err != nil {
		h.logger.Error().Err(err).Msg("Autocomplete failed")
		WriteError(w, http.StatusBadGateway, "Autocomplete failed")
		return
	}
	if suggestions == nil {
		suggestions = []interfaces.Suggestion{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// DetailsHandler handles GET /api/places/{id} requests
func (h *PlacesHandler) DetailsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/places/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Place id is required")
		return
	}

	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.chatConfig.Language
	}

	place, err := h.geo.GetPlaceDetails(r.Context(), id, language)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Place details lookup failed")
		WriteError(w, http.StatusBadGateway, "Place details lookup failed")
		return
	}
	if place == nil {
		WriteError(w, http.StatusNotFound, "Place not found")
		return
	}
	WriteJSON(w, http.StatusOK, place)
}

// parseLatLng builds an optional coordinate pair from query parameters
func parseLatLng(latStr, lngStr string) *models.LatLng {
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return &models.LatLng{Lat: lat, Lng: lng}
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
