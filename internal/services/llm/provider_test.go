package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
)

func newTestFactory(defaultProvider common.LLMProvider) *ProviderFactory {
	return NewProviderFactory(
		&common.GeminiConfig{APIKey: "gk", Model: "gemini-2.5-flash-lite"},
		&common.ClaudeConfig{APIKey: "ck", Model: "claude-haiku-3-5-20241022"},
		&common.LLMConfig{DefaultProvider: defaultProvider},
		arbor.NewLogger(),
	)
}

func TestDetectProvider(t *testing.T) {
	factory := newTestFactory(common.LLMProviderGemini)

	tests := []struct {
		model    string
		expected ProviderType
	}{
		{"", ProviderGemini},
		{"gemini-2.5-flash-lite", ProviderGemini},
		{"claude-haiku-3-5-20241022", ProviderClaude},
		{"claude/claude-haiku-3-5-20241022", ProviderClaude},
		{"anthropic/claude-sonnet", ProviderClaude},
		{"google/gemini-pro", ProviderGemini},
		{"unknown-model", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.expected, factory.DetectProvider(tt.model))
		})
	}
}

func TestNormalizeModel(t *testing.T) {
	factory := newTestFactory(common.LLMProviderGemini)

	assert.Equal(t, "claude-haiku-3-5-20241022", factory.NormalizeModel("claude/claude-haiku-3-5-20241022"))
	assert.Equal(t, "gemini-pro", factory.NormalizeModel("google/gemini-pro"))
	assert.Equal(t, "gemini-2.5-flash-lite", factory.NormalizeModel("gemini-2.5-flash-lite"))
}

func TestHasCredential(t *testing.T) {
	factory := NewProviderFactory(
		&common.GeminiConfig{APIKey: ""},
		&common.ClaudeConfig{APIKey: "ck"},
		&common.LLMConfig{DefaultProvider: common.LLMProviderGemini},
		arbor.NewLogger(),
	)

	assert.False(t, factory.HasCredential(ProviderGemini))
	assert.True(t, factory.HasCredential(ProviderClaude))
}

func TestConvertMessagesToGemini(t *testing.T) {
	messages := []ChatMessage{
		{Role: "user", Content: "여행 계획 좀"},
		{Role: "assistant", Content: "어디로 가시나요?"},
		{Role: "user", Content: "부산"},
	}

	contents, err := convertMessagesToGemini(messages)
	require.NoError(t, err)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
	assert.Equal(t, "user", string(contents[2].Role))
}

func TestConvertMessagesRejectEmpty(t *testing.T) {
	_, err := convertMessagesToGemini(nil)
	assert.Error(t, err)

	_, err = convertMessagesToClaude(nil)
	assert.Error(t, err)
}
