package agents

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// routerHistoryWindow is how many recent turns the classification sees
const routerHistoryWindow = 5

// plannerKeywords trigger the planner in the keyword fallback. Checked before
// search keywords so planning requests that also mention recommendations still
// route to the planner.
var plannerKeywords = []string{
	"일정", "경로", "순서", "루트", "여행 계획", "계획", "동선", "지도에", "표시",
	"plan", "route", "itinerary", "schedule",
}

// searchKeywords trigger the search agent in the keyword fallback
var searchKeywords = []string{
	"추천", "검색", "찾아", "맛집", "카페", "호텔", "관광", "명소", "근처",
	"find", "search", "recommend", "restaurant", "cafe",
}

// Router classifies each user turn into one of the three agent roles
type Router struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewRouter creates the intent router
func NewRouter(llm interfaces.LLMService, logger arbor.ILogger) *Router {
	return &Router{
		llm:    llm,
		logger: logger,
	}
}

// SelectAgent routes a user message to an agent. Routing never fails: with no
// credential it short-circuits to the communicator before any keyword logic,
// and a failed or unparseable classification degrades to keyword matching.
func (r *Router) SelectAgent(ctx context.Context, message string, history []models.Message, language string) models.AgentSelection {
	if !r.llm.IsConfigured() {
		return models.AgentSelection{
			Agent:  models.AgentCommunicator,
			Reason: "llm not configured",
		}
	}

	recent := history
	if len(recent) > routerHistoryWindow {
		recent = recent[len(recent)-routerHistoryWindow:]
	}

	completion, err := r.llm.CompleteChat(ctx, routerPrompt, message, recent)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Agent classification call failed, using keyword fallback")
		return r.keywordFallback(message)
	}

	raw := extractJSONObject(completion)
	if raw == "" {
		r.logger.Debug().Str("completion", completion).Msg("No JSON object in classification, using keyword fallback")
		return r.keywordFallback(message)
	}

	var selection models.AgentSelection
	if err := json.Unmarshal([]byte(raw), &selection); err != nil || !selection.Agent.Valid() {
		r.logger.Debug().Str("raw", raw).Msg("Invalid classification payload, using keyword fallback")
		return r.keywordFallback(message)
	}

	r.logger.Info().
		Str("agent", string(selection.Agent)).
		Str("reason", selection.Reason).
		Msg("Agent selected")
	return selection
}

// keywordFallback is the deterministic classification used when the LLM path
// fails. Planner keywords take precedence over search keywords.
func (r *Router) keywordFallback(message string) models.AgentSelection {
	lower := strings.ToLower(message)

	for _, keyword := range plannerKeywords {
		if strings.Contains(lower, keyword) {
			return models.AgentSelection{Agent: models.AgentPlanner, Reason: "keyword match: " + keyword}
		}
	}
	for _, keyword := range searchKeywords {
		if strings.Contains(lower, keyword) {
			return models.AgentSelection{Agent: models.AgentSearch, Reason: "keyword match: " + keyword}
		}
	}
	return models.AgentSelection{Agent: models.AgentCommunicator, Reason: "no keyword match"}
}
