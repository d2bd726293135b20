package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, "gpt-4o-mini-transcribe", cfg.TranscribeModel)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.OpenAIAPIKey, "a missing key must not fail config load")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("OPENAI_HTTP_TIMEOUT", "90s")
	t.Setenv("MAX_FILE_SIZE", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
}

func TestLoadIgnoresBadNumericValues(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "not a number")
	t.Setenv("OPENAI_HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(25*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
}
