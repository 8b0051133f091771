package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
	"github.com/ksg0322/travel-map/internal/services/memory"
	"github.com/ksg0322/travel-map/internal/services/saved"
)

// ChatHandler handles the conversational API surface
type ChatHandler struct {
	orchestrator interfaces.OrchestratorService
	memory       *memory.Service
	saved        *saved.Service
	chatConfig   *common.ChatConfig
	markdown     goldmark.Markdown
	logger       arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	orchestrator interfaces.OrchestratorService,
	memoryService *memory.Service,
	savedService *saved.Service,
	chatConfig *common.ChatConfig,
	logger arbor.ILogger,
) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		memory:       memoryService,
		saved:        savedService,
		chatConfig:   chatConfig,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		),
		logger: logger,
	}
}

// chatRequest is the POST /api/chat payload. Optional fields fall back to the
// configured chat defaults.
type chatRequest struct {
	Message         string           `json:"message"`
	Language        string           `json:"language,omitempty"`
	CurrentLocation *models.Location `json:"currentLocation,omitempty"`
	MapCenter       *models.Location `json:"mapCenter,omitempty"`
	SearchResults   []models.Place   `json:"searchResults,omitempty"`
	RadiusKm        float64          `json:"radiusKm,omitempty"`
	MinRating       float64          `json:"minRating,omitempty"`
}

// chatResponse is the POST /api/chat result envelope
type chatResponse struct {
	Response     string            `json:"response"`
	ResponseHTML string            `json:"responseHtml"`
	Agent        models.AgentType  `json:"agent"`
	SearchQuery  string            `json:"searchQuery,omitempty"`
	RoutePaths   []models.RouteLeg `json:"routePaths"`
}

// ChatTurnHandler handles POST /api/chat requests
func (h *ChatHandler) ChatTurnHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode chat request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "Message field is required")
		return
	}

	language := req.Language
	if language == "" {
		language = h.chatConfig.Language
	}
	radiusKm := req.RadiusKm
	if radiusKm <= 0 {
		radiusKm = h.chatConfig.DefaultRadiusKm
	}
	minRating := req.MinRating
	if minRating <= 0 {
		minRating = h.chatConfig.DefaultMinRating
	}

	ctx := r.Context()
	history := h.memory.Load(ctx)

	savedPlaces, err := h.saved.List(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to load saved places for chat turn")
		savedPlaces = nil
	}

	result, err := h.orchestrator.HandleChatTurn(ctx, &interfaces.ChatTurnRequest{
		Message:         req.Message,
		History:         history,
		SearchResults:   req.SearchResults,
		Language:        language,
		CurrentLocation: req.CurrentLocation,
		MapCenter:       req.MapCenter,
		SavedPlaces:     savedPlaces,
		RadiusMeters:    int(radiusKm * 1000),
		MinRating:       minRating,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Chat turn rejected")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	history = append(history,
		models.NewUserMessage(req.Message),
		models.NewAssistantMessage(result.Response),
	)
	h.memory.Save(ctx, history)

	WriteJSON(w, http.StatusOK, chatResponse{
		Response:     result.Response,
		ResponseHTML: h.renderMarkdown(result.Response),
		Agent:        result.Agent,
		SearchQuery:  result.SearchQuery,
		RoutePaths:   result.RoutePaths,
	})
}

// HistoryHandler handles GET and DELETE /api/chat/history requests
func (h *ChatHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"messages": h.memory.Load(ctx),
		})

	case http.MethodDelete:
		if err := h.memory.Clear(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Failed to clear conversation history")
			WriteError(w, http.StatusInternalServerError, "Failed to clear history")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// renderMarkdown converts an assistant reply to HTML. On a render failure the
// raw text is returned so the client can still show something.
func (h *ChatHandler) renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(text), &buf); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to render response markdown")
		return text
	}
	return buf.String()
}
