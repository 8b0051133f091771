package agents

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// Communicator handles general travel conversation
type Communicator struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewCommunicator creates the general conversation agent
func NewCommunicator(llm interfaces.LLMService, logger arbor.ILogger) *Communicator {
	return &Communicator{
		llm:    llm,
		logger: logger,
	}
}

// Respond generates a conversational reply. Errors propagate to the
// orchestrator, which converts them into a user-visible apology.
func (c *Communicator) Respond(ctx context.Context, message string, history []models.Message, language string, contextBlock string) (string, error) {
	prompt := communicatorPrompt(language)
	if contextBlock != "" {
		prompt += "\n\n" + contextBlock
	}
	return c.llm.CompleteChat(ctx, prompt, message, history)
}
