package interfaces

import (
	"context"

	"github.com/ksg0322/travel-map/internal/models"
)

// LLMService provides chat completions against a hosted language model.
//
// CompleteChat sends a system prompt, the running history and the new user
// message in one completion request. When the service call itself fails it
// returns an explicit error; when no credential is configured it returns a
// fixed human apology string with a nil error (no network call is attempted).
type LLMService interface {
	CompleteChat(ctx context.Context, systemPrompt, message string, history []models.Message) (string, error)

	// IsConfigured reports whether a usable API credential is present
	IsConfigured() bool

	Close() error
}
