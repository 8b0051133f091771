package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigValidates(t *testing.T) {
	config := NewDefaultConfig()
	require.NoError(t, Validate(config))

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "ko", config.Chat.Language)
	assert.Equal(t, 20, config.Chat.MaxHistoryMessages)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
}

func TestLoadFromFilesMergesAndOverrides(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	require.NoError(t, os.WriteFile(base, []byte(`
[server]
port = 9000

[chat]
language = "en"
`), 0o644))

	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(override, []byte(`
[server]
port = 9100
`), 0o644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 9100, config.Server.Port, "later file wins")
	assert.Equal(t, "en", config.Chat.Language, "earlier file value survives when not overridden")
	assert.Equal(t, "localhost", config.Server.Host, "defaults fill the rest")
}

func TestEnvOverridesApply(t *testing.T) {
	t.Setenv("TRAVELMAP_SERVER_PORT", "9200")
	t.Setenv("TRAVELMAP_CHAT_LANGUAGE", "ja")
	t.Setenv("GEMINI_API_KEY", "env-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9200, config.Server.Port)
	assert.Equal(t, "ja", config.Chat.Language)
	assert.Equal(t, "env-key", config.Gemini.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	config := NewDefaultConfig()
	config.Chat.Language = "fr"
	assert.Error(t, Validate(config))

	config = NewDefaultConfig()
	config.LLM.DefaultProvider = "openai"
	assert.Error(t, Validate(config))

	config = NewDefaultConfig()
	config.Logging.Level = "verbose"
	assert.Error(t, Validate(config))
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 7777, "0.0.0.0")
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 7777, config.Server.Port, "zero values leave config untouched")
}

func TestLoadFromFilesMissingFileErrors(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/travel-map.toml")
	assert.Error(t, err)
}
