// Package llm provides chat completion over the configured AI provider.
// A single service fronts both Gemini and Claude through the provider
// factory, with rate limit aware retries on each call.
package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// apologyNotConfigured is returned verbatim when no provider credential is
// available. Callers receive it with a nil error so the chat surface can show
// it to the user instead of failing the turn.
const apologyNotConfigured = "죄송합니다. AI 채팅 기능을 사용할 수 없습니다. API 키를 설정해주세요."

// Service implements the LLMService interface over the provider factory
type Service struct {
	factory *ProviderFactory
	config  *common.LLMConfig
	logger  arbor.ILogger
}

// NewService creates an LLM completion service
func NewService(config *common.Config, logger arbor.ILogger) interfaces.LLMService {
	factory := NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, logger)
	return &Service{
		factory: factory,
		config:  &config.LLM,
		logger:  logger,
	}
}

// IsConfigured reports whether the default provider has a credential
func (s *Service) IsConfigured() bool {
	return s.factory.HasCredential(ProviderType(s.config.DefaultProvider))
}

// CompleteChat sends the conversation history plus the new message to the
// configured provider and returns the assistant's reply. When no credential
// is configured it returns a fixed apology with a nil error; an actual call
// failure surfaces as an error.
func (s *Service) CompleteChat(ctx context.Context, systemPrompt, message string, history []models.Message) (string, error) {
	if !s.IsConfigured() {
		s.logger.Warn().
			Str("provider", string(s.config.DefaultProvider)).
			Msg("Chat completion requested without a provider credential")
		return apologyNotConfigured, nil
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Sender == models.SenderAssistant {
			role = "assistant"
		}
		messages = append(messages, ChatMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	response, err := s.factory.GenerateContent(ctx, &ContentRequest{
		Messages:          messages,
		SystemInstruction: systemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	s.logger.Debug().
		Str("provider", string(response.Provider)).
		Str("model", response.Model).
		Int("history_count", len(history)).
		Msg("Chat completion succeeded")

	return response.Text, nil
}

// Close releases provider clients
func (s *Service) Close() error {
	return s.factory.Close()
}
