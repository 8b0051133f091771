package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	MapsAPI     MapsAPIConfig `toml:"maps_api"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
	LLM         LLMConfig     `toml:"llm"`
	Chat        ChatConfig    `toml:"chat"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout", "file"
}

// MapsAPIConfig contains Google Maps Platform configuration (Places API New,
// Geocoding, Directions, Distance Matrix)
type MapsAPIConfig struct {
	APIKey              string        `toml:"api_key"`                // Google Maps Platform API key
	RateLimit           time.Duration `toml:"rate_limit"`             // Minimum time between API requests
	RequestTimeout      time.Duration `toml:"request_timeout"`        // HTTP request timeout
	MaxResultsPerSearch int           `toml:"max_results_per_search" validate:"gte=1,lte=20"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for chat completions
	MaxTokens   int     `toml:"max_tokens"`  // Maximum output tokens (default: 1024)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for chat completions
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 1024)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"` // "gemini" or "claude"
}

// ChatConfig contains defaults for the conversational surface
type ChatConfig struct {
	Language           string  `toml:"language" validate:"oneof=ko en ja zh"` // Default response language
	DefaultRadiusKm    float64 `toml:"default_radius_km" validate:"gt=0"`    // Default search radius in kilometers
	DefaultMinRating   float64 `toml:"default_min_rating" validate:"gte=0,lte=5"`
	MaxHistoryMessages int     `toml:"max_history_messages" validate:"gte=2"` // Conversation window size
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		MapsAPI: MapsAPIConfig{
			APIKey:              "", // User must provide API key in config file
			RateLimit:           1 * time.Second,
			RequestTimeout:      30 * time.Second,
			MaxResultsPerSearch: 20,
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-2.5-flash-lite",
			MaxTokens:   1024,
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   1024,
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Chat: ChatConfig{
			Language:           "ko",
			DefaultRadiusKm:    5,
			DefaultMinRating:   0,
			MaxHistoryMessages: 20,
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against the struct-level constraints
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TRAVELMAP_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("TRAVELMAP_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TRAVELMAP_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("TRAVELMAP_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("TRAVELMAP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// API keys follow the providers' conventional variable names first
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		config.MapsAPI.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}

	if provider := os.Getenv("TRAVELMAP_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if language := os.Getenv("TRAVELMAP_CHAT_LANGUAGE"); language != "" {
		config.Chat.Language = language
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
