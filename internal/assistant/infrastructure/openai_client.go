package infrastructure

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"jnmoveis/internal/config"
)

// ErrMissingAPIKey aucune clé OpenAI configurée
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

// apiKeySecretPath secret monté par le gestionnaire de conteneurs
const apiKeySecretPath = "/run/secrets/openai_api_key"

// NewOpenAIClient crée le client de chat. La clé vient de la configuration,
// à défaut du secret monté; OPENAI_BASE_URL permet un serveur compatible.
func NewOpenAIClient(cfg config.AssistantConfig, logger *slog.Logger) (*openai.Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		raw, err := os.ReadFile(apiKeySecretPath)
		if err != nil {
			logger.Debug("OPENAI_API_KEY not set and secret not found", "path", apiKeySecretPath)
			return nil, ErrMissingAPIKey
		}
		apiKey = strings.TrimSpace(string(raw))
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		logger.Info("read the OpenAI API key from secret", "path", apiKeySecretPath)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		clientCfg.BaseURL = base
	}
	logger.Info("initializing OpenAI client", "model", cfg.Model)
	return openai.NewClientWithConfig(clientCfg), nil
}
