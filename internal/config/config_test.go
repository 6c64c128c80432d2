package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestNew_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/bots.json", cfg.BotStorePath)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AIModel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AIBaseURL)
	assert.Empty(t, cfg.LogFormat)
}

func TestNew_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADDR", ":8080")
	t.Setenv("BOT_STORE_PATH", "/var/lib/chatfeed/bots.json")
	t.Setenv("AI_MODEL", "other-model")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/var/lib/chatfeed/bots.json", cfg.BotStorePath)
	assert.Equal(t, "other-model", cfg.AIModel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestNew_MissingRequired(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := New()
	assert.Error(t, err)
}

func TestNew_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_BASE_URL", "not a url")

	_, err := New()
	assert.Error(t, err)

	t.Setenv("AI_BASE_URL", "https://api.groq.com/openai/v1")
	t.Setenv("LOG_FORMAT", "yaml")
	_, err = New()
	assert.Error(t, err)
}
