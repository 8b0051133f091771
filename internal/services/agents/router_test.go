package agents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksg0322/travel-map/internal/models"
)

func TestSelectAgentShortCircuitsWhenUnconfigured(t *testing.T) {
	llm := &mockLLM{configured: false}
	router := NewRouter(llm, testLogger())

	// Planning keywords must not matter: the short-circuit runs before any
	// keyword logic
	selection := router.SelectAgent(context.Background(), "오늘 여행 일정 짜줘", nil, "ko")

	assert.Equal(t, models.AgentCommunicator, selection.Agent)
	assert.Empty(t, llm.calls, "no LLM call should be made without a credential")
}

func TestSelectAgentKeywordFallbackOnLLMFailure(t *testing.T) {
	tests := []struct {
		message  string
		expected models.AgentType
	}{
		{"오늘 여행 일정 짜줘", models.AgentPlanner},
		{"경로 보여줘", models.AgentPlanner},
		{"plan my route", models.AgentPlanner},
		{"근처 맛집 찾아줘", models.AgentSearch},
		{"카페 추천해줘", models.AgentSearch},
		{"고마워!", models.AgentCommunicator},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			llm := &mockLLM{configured: true, err: fmt.Errorf("service unavailable")}
			router := NewRouter(llm, testLogger())

			selection := router.SelectAgent(context.Background(), tt.message, nil, "ko")
			assert.Equal(t, tt.expected, selection.Agent)
		})
	}
}

func TestSelectAgentPlannerKeywordsTakePrecedence(t *testing.T) {
	llm := &mockLLM{configured: true, err: fmt.Errorf("down")}
	router := NewRouter(llm, testLogger())

	// Contains both a planner keyword and a search keyword
	selection := router.SelectAgent(context.Background(), "추천받은 곳으로 경로 만들어줘", nil, "ko")
	assert.Equal(t, models.AgentPlanner, selection.Agent)
}

func TestSelectAgentParsesClassification(t *testing.T) {
	llm := &mockLLM{
		configured: true,
		queue:      []string{`분류 결과: {"agent": "search_agent", "reason": "place recommendation request"}`},
	}
	router := NewRouter(llm, testLogger())

	selection := router.SelectAgent(context.Background(), "어디 가면 좋을까?", nil, "ko")

	assert.Equal(t, models.AgentSearch, selection.Agent)
	assert.Equal(t, "place recommendation request", selection.Reason)
}

func TestSelectAgentFallsBackOnInvalidAgentTag(t *testing.T) {
	llm := &mockLLM{
		configured: true,
		queue:      []string{`{"agent": "navigator", "reason": "made up"}`},
	}
	router := NewRouter(llm, testLogger())

	selection := router.SelectAgent(context.Background(), "일정 알려줘", nil, "ko")
	assert.Equal(t, models.AgentPlanner, selection.Agent, "invalid tag degrades to keyword fallback")
}

func TestSelectAgentFallsBackOnNonJSONCompletion(t *testing.T) {
	llm := &mockLLM{
		configured: true,
		queue:      []string{"planner 같습니다"},
	}
	router := NewRouter(llm, testLogger())

	selection := router.SelectAgent(context.Background(), "안녕하세요", nil, "ko")
	assert.Equal(t, models.AgentCommunicator, selection.Agent)
}
