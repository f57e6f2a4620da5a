package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
)

func TestNewOpenAIClient_WithKey(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")

	client, err := NewOpenAIClient(config.AssistantConfig{APIKey: "sk-test", Model: "gpt-4o-mini"}, logging.Discard())

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewOpenAIClient_MissingKey(t *testing.T) {
	_, err := NewOpenAIClient(config.AssistantConfig{Model: "gpt-4o-mini"}, logging.Discard())
	if err == nil {
		t.Skip("secret file present on this host")
	}
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
