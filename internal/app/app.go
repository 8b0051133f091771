// Package app wires the application components together
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/common"
	"github.com/ksg0322/travel-map/internal/handlers"
	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/services/agents"
	"github.com/ksg0322/travel-map/internal/services/geo"
	"github.com/ksg0322/travel-map/internal/services/llm"
	"github.com/ksg0322/travel-map/internal/services/memory"
	"github.com/ksg0322/travel-map/internal/services/saved"
	"github.com/ksg0322/travel-map/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService    interfaces.LLMService
	GeoService    interfaces.GeoService
	MemoryService *memory.Service
	SavedService  *saved.Service
	Orchestrator  interfaces.OrchestratorService

	// HTTP handlers
	ChatHandler   *handlers.ChatHandler
	PlacesHandler *handlers.PlacesHandler
}

// New creates the application with all services wired
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	llmService := llm.NewService(config, logger)
	geoService := geo.NewService(&config.MapsAPI, logger)
	memoryService := memory.NewService(storageManager.ConversationStorage(), logger, config.Chat.MaxHistoryMessages)
	savedService := saved.NewService(storageManager.SavedPlaceStorage(), logger)
	orchestrator := agents.NewOrchestrator(llmService, geoService, logger)

	app := &App{
		Config:         config,
		Logger:         logger,
		StorageManager: storageManager,
		LLMService:     llmService,
		GeoService:     geoService,
		MemoryService:  memoryService,
		SavedService:   savedService,
		Orchestrator:   orchestrator,
		ChatHandler:    handlers.NewChatHandler(orchestrator, memoryService, savedService, &config.Chat, logger),
		PlacesHandler:  handlers.NewPlacesHandler(geoService, savedService, &config.Chat, logger),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("llm_provider", string(config.LLM.DefaultProvider)).
		Bool("llm_configured", llmService.IsConfigured()).
		Bool("maps_configured", config.MapsAPI.APIKey != "").
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources
func (a *App) Close() error {
	if err := a.LLMService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
	}
	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
