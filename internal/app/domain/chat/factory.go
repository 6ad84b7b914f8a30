package chat

import (
	"context"
	"fmt"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/pkg/config"
)

// NewLLM builds the configured provider. A missing key yields
// models.ErrMissingAPIKey; callers then run on the fallback responder alone.
func NewLLM(ctx context.Context, cfg config.ChatConfig) (LLM, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", models.ErrValidation, cfg.Provider)
	}
}
