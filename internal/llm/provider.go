package llm

import (
	"context"
	"fmt"

	"github.com/Lllllllleong/hackrx-docqa/internal/config"
	"github.com/Lllllllleong/hackrx-docqa/internal/gcp"
)

// NewGenerator builds the backend named by cfg.Provider. It returns
// ErrNotConfigured (wrapped) when the backend's credential is missing.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	if !cfg.ModelConfigured() {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrNotConfigured)
	}

	var (
		g   Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		g, err = NewOpenAIGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature)
	case config.ProviderOllama:
		g, err = NewOllamaGenerator(cfg.BaseURL, cfg.Model, cfg.Temperature)
	case config.ProviderVertex:
		g, err = gcp.NewVertexClient(ctx, gcp.VertexConfig{
			ProjectID:       cfg.ProjectID,
			Region:          cfg.Region,
			Model:           cfg.Model,
			Temperature:     float32(cfg.Temperature),
			CredentialsFile: cfg.CredentialsFile,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
