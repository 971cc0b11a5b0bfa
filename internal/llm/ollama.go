package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaGenerator runs prompts against a local Ollama server.
type OllamaGenerator struct {
	llm         llms.Model
	temperature float64
}

func NewOllamaGenerator(serverURL, model string, temperature float64) (*OllamaGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama: %w", ErrNotConfigured)
	}
	l, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return &OllamaGenerator{llm: l, temperature: temperature}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return out, nil
}
