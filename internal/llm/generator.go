package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by NewGenerator when the selected backend has
// no credential. Callers keep serving and fail each request instead.
var ErrNotConfigured = errors.New("generative model not configured")

// Generator sends one prompt to a generative model and returns its completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
