package interfaces

import (
	"context"

	"github.com/ksg0322/travel-map/internal/models"
)

// SearchCallback is invoked when the search agent produces a query the UI
// layer should execute against the map
type SearchCallback func(ctx context.Context, query string)

// ChatTurnRequest carries everything the orchestrator needs for one user turn
type ChatTurnRequest struct {
	Message         string
	History         []models.Message
	SearchResults   []models.Place
	Language        string
	CurrentLocation *models.Location
	MapCenter       *models.Location
	SavedPlaces     []models.Place
	RadiusMeters    int
	MinRating       float64
	OnSearch        SearchCallback
}

// OrchestratorService is the top-level entry point consumed by the UI layer.
// Agent-level failures are absorbed into an apology response; the returned
// error only reports invalid requests.
type OrchestratorService interface {
	HandleChatTurn(ctx context.Context, req *ChatTurnRequest) (*models.TurnResult, error)
}
