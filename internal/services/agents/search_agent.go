package agents

import (
	"context"
	"encoding/json"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// SearchAgent turns search and recommendation requests into a user-facing
// reply plus a map search query
type SearchAgent struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// searchReply is the strict JSON shape the search agent asks the model for
type searchReply struct {
	Response    string `json:"response"`
	SearchQuery string `json:"searchQuery"`
}

// NewSearchAgent creates the place search agent
func NewSearchAgent(llm interfaces.LLMService, logger arbor.ILogger) *SearchAgent {
	return &SearchAgent{
		llm:    llm,
		logger: logger,
	}
}

// Respond generates a reply and an optional map search query. When the model
// ignores the JSON format the raw completion becomes the reply and no search
// query is produced.
func (a *SearchAgent) Respond(ctx context.Context, message string, history []models.Message, language string, contextBlock string) (string, string, error) {
	prompt := searchAgentPrompt(language)
	if contextBlock != "" {
		prompt += "\n\n" + contextBlock
	}

	completion, err := a.llm.CompleteChat(ctx, prompt, message, history)
	if err != nil {
		return "", "", err
	}

	raw := extractJSONObject(completion)
	if raw != "" {
		var reply searchReply
		if err := json.Unmarshal([]byte(raw), &reply); err == nil && reply.Response != "" {
			return reply.Response, reply.SearchQuery, nil
		}
	}

	a.logger.Debug().Msg("Search agent completion was not the expected JSON shape, using raw text")
	return completion, "", nil
}
