package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("POSTGRES_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8091", cfg.ServerPort)
	assert.Equal(t, ProviderGemini, cfg.Chat.Provider)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "@every 30m", cfg.Weather.Refresh)
	assert.InDelta(t, 13.7633, cfg.Weather.Lat, 1e-9)
	assert.False(t, cfg.Repositories.Postgres.Enabled())
	assert.Equal(t, "Asia/Manila", cfg.Location().String())
}

func TestLoad_ProviderSelection(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Chat.Provider)
	assert.Equal(t, "sk-test", cfg.Chat.APIKey())
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "parrot")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadTimezone(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}
