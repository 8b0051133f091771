package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
	"github.com/ksg0322/travel-map/internal/services/memory"
	"github.com/ksg0322/travel-map/internal/services/saved"
	"github.com/ksg0322/travel-map/internal/storage/memstore"
)

// mockOrchestrator implements interfaces.OrchestratorService for testing
type mockOrchestrator struct {
	handleFunc func(ctx context.Context, req *interfaces.ChatTurnRequest) (*models.TurnResult, error)
	lastReq    *interfaces.ChatTurnRequest
}

func (m *mockOrchestrator) HandleChatTurn(ctx context.Context, req *interfaces.ChatTurnRequest) (*models.TurnResult, error) {
	m.lastReq = req
	if m.handleFunc != nil {
		return m.handleFunc(ctx, req)
	}
	return &models.TurnResult{
		Response:   "**좋은 선택이에요!**",
		Agent:      models.AgentCommunicator,
		RoutePaths: []models.RouteLeg{},
	}, nil
}

func newTestChatHandler(orchestrator interfaces.OrchestratorService) (*ChatHandler, *memory.Service) {
	logger := arbor.NewLogger()
	manager := memstore.NewManager()
	memoryService := memory.NewService(manager.ConversationStorage(), logger, memory.MaxMessages)
	savedService := saved.NewService(manager.SavedPlaceStorage(), logger)
	chatConfig := &common.ChatConfig{
		Language:           "ko",
		DefaultRadiusKm:    5,
		MaxHistoryMessages: 20,
	}
	return NewChatHandler(orchestrator, memoryService, savedService, chatConfig, logger), memoryService
}

func postChat(handler *ChatHandler, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ChatTurnHandler(rec, req)
	return rec
}

func TestChatTurnHandlerPersistsTurnAndRendersHTML(t *testing.T) {
	orch := &mockOrchestrator{}
	handler, memoryService := newTestChatHandler(orch)

	rec := postChat(handler, `{"message": "안녕하세요"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "**좋은 선택이에요!**", resp["response"])
	assert.Contains(t, resp["responseHtml"], "<strong>좋은 선택이에요!</strong>")
	assert.Equal(t, "communicator", resp["agent"])
	assert.NotNil(t, resp["routePaths"])

	window := memoryService.Load(context.Background())
	require.Len(t, window, 2)
	assert.Equal(t, "안녕하세요", window[0].Text)
	assert.Equal(t, models.SenderAssistant, window[1].Sender)
}

func TestChatTurnHandlerAppliesDefaults(t *testing.T) {
	orch := &mockOrchestrator{}
	handler, _ := newTestChatHandler(orch)

	rec := postChat(handler, `{"message": "근처 카페?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, orch.lastReq)
	assert.Equal(t, "ko", orch.lastReq.Language)
	assert.Equal(t, 5000, orch.lastReq.RadiusMeters)
}

func TestChatTurnHandlerRejectsBadRequests(t *testing.T) {
	handler, _ := newTestChatHandler(&mockOrchestrator{})

	rec := postChat(handler, `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postChat(handler, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec = httptest.NewRecorder()
	handler.ChatTurnHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHistoryHandler(t *testing.T) {
	handler, memoryService := newTestChatHandler(&mockOrchestrator{})
	ctx := context.Background()
	memoryService.AppendTurn(ctx, "질문", "답변")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	rec := httptest.NewRecorder()
	handler.HistoryHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Messages, 2)

	req = httptest.NewRequest(http.MethodDelete, "/api/chat/history", nil)
	rec = httptest.NewRecorder()
	handler.HistoryHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, memoryService.Size(ctx))
}
