// Package agents implements the conversational core: a supervisor that
// routes each user turn to one of three role-specific response generators,
// and the trip planner pipeline that turns saved places into a multi-leg
// route.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// Orchestrator is the top-level entry point for one chat turn. It enriches
// location context, routes the message, dispatches to the selected agent and
// returns a unified result envelope.
type Orchestrator struct {
	llm          interfaces.LLMService
	geo          interfaces.GeoService
	router       *Router
	communicator *Communicator
	searchAgent  *SearchAgent
	planner      *Planner
	logger       arbor.ILogger
}

// NewOrchestrator wires the router and the three agents
func NewOrchestrator(llm interfaces.LLMService, geo interfaces.GeoService, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		llm:          llm,
		geo:          geo,
		router:       NewRouter(llm, logger),
		communicator: NewCommunicator(llm, logger),
		searchAgent:  NewSearchAgent(llm, logger),
		planner:      NewPlanner(llm, geo, logger),
		logger:       logger,
	}
}

// HandleChatTurn processes one user turn. Agent-level failures are absorbed
// into a fixed apology response; the returned error only reports an invalid
// request. RoutePaths in the result is always non-nil and an empty slice
// tells the caller to clear any previously drawn route.
func (o *Orchestrator) HandleChatTurn(ctx context.Context, req *interfaces.ChatTurnRequest) (*models.TurnResult, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	o.enrichLocation(ctx, req.CurrentLocation, req.Language)
	o.enrichLocation(ctx, req.MapCenter, req.Language)

	selection := o.router.SelectAgent(ctx, req.Message, req.History, req.Language)
	contextBlock := BuildContext(ContextInput{
		CurrentLocation: req.CurrentLocation,
		MapCenter:       req.MapCenter,
		SavedPlaces:     req.SavedPlaces,
		SearchResults:   req.SearchResults,
		RadiusMeters:    req.RadiusMeters,
		MinRating:       req.MinRating,
	}, selection.Agent)

	result := &models.TurnResult{
		Agent:      selection.Agent,
		RoutePaths: []models.RouteLeg{},
	}

	var err error
	switch selection.Agent {
	case models.AgentPlanner:
		var planned *PlannerResult
		planned, err = o.planner.Respond(ctx, req.Message, req.History, req.Language, req.CurrentLocation, req.SavedPlaces, contextBlock)
		if err == nil {
			result.Response = planned.Response
			result.RoutePaths = planned.RoutePaths
		}

	case models.AgentSearch:
		var query string
		result.Response, query, err = o.searchAgent.Respond(ctx, req.Message, req.History, req.Language, contextBlock)
		if err == nil && query != "" {
			result.SearchQuery = query
			if req.OnSearch != nil {
				req.OnSearch(ctx, query)
			}
		}

	default:
		result.Response, err = o.communicator.Respond(ctx, req.Message, req.History, req.Language, contextBlock)
	}

	if err != nil {
		o.logger.Error().
			Err(err).
			Str("agent", string(selection.Agent)).
			Msg("Agent response generation failed")
		result.Response = apologyTransient
		result.SearchQuery = ""
		result.RoutePaths = []models.RouteLeg{}
		return result, nil
	}

	o.logger.Info().
		Str("agent", string(selection.Agent)).
		Int("route_legs", len(result.RoutePaths)).
		Bool("search_query", result.SearchQuery != "").
		Msg("Chat turn completed")

	return result, nil
}

// enrichLocation fills in a missing address by reverse geocoding. Best
// effort: failures leave the location untouched.
func (o *Orchestrator) enrichLocation(ctx context.Context, location *models.Location, language string) {
	if !location.HasCoordinates() || location.Address != "" {
		return
	}

	result, err := o.geo.ReverseGeocode(ctx, location.Lat, location.Lng, language)
	if err != nil || result == nil {
		if err != nil {
			o.logger.Debug().Err(err).Msg("Reverse geocode enrichment failed")
		}
		return
	}
	location.Address = result.FormattedAddress
}
