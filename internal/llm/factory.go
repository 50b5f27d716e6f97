package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/havenchat/haven/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewClient creates the configured language-model client. The system
// instruction is pinned for the client's lifetime.
func NewClient(ctx context.Context, cfg config.LLMConfig, systemInstruction string) (Client, error) {
	opts := Options{
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model, systemInstruction, opts)
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, systemInstruction, opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
