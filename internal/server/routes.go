package server

import (
	"net/http"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/handlers"
)

// setupRoutes registers the API routes. The bare /api/places/ prefix resolves
// place ids, so the more specific saved/search/autocomplete paths must be
// registered alongside it; ServeMux picks the longest matching pattern.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Chat API
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatTurnHandler)          // POST - one conversational turn
	mux.HandleFunc("/api/chat/history", s.app.ChatHandler.HistoryHandler)   // GET (load), DELETE (clear)

	// Places API
	mux.HandleFunc("/api/places/saved", s.app.PlacesHandler.SavedPlacesHandler)        // GET (list), POST (save), DELETE (clear)
	mux.HandleFunc("/api/places/saved/", s.app.PlacesHandler.SavedPlaceHandler)        // DELETE /{id}
	mux.HandleFunc("/api/places/search", s.app.PlacesHandler.SearchHandler)            // GET - text search
	mux.HandleFunc("/api/places/autocomplete", s.app.PlacesHandler.AutocompleteHandler) // GET - predictions
	mux.HandleFunc("/api/places/", s.app.PlacesHandler.DetailsHandler)                 // GET /{id}

	// Health
	mux.HandleFunc("/api/health", s.healthHandler)

	return mux
}

// healthHandler handles GET /api/health requests
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if !handlers.RequireMethod(w, r, http.MethodGet) {
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": common.GetVersion(),
	})
}
