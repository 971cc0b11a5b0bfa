package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/hackrx-docqa/internal/config"
)

func TestGeneratorFunc(t *testing.T) {
	var got string
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		got = prompt
		return "ok", nil
	})

	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "hello", got)
}

func TestOpenAIGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/chat/completions")
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"answers\":[\"A\"]}"}
			}]
		}`))
	}))
	defer server.Close()

	g, err := NewOpenAIGenerator("sk-test", server.URL, "gpt-4o-mini", 0)
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"answers":["A"]}`, out)
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator("", "", "gpt-4o-mini", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewOllamaGenerator(t *testing.T) {
	_, err := NewOllamaGenerator("", "mistral", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)

	g, err := NewOllamaGenerator("http://localhost:11434", "mistral", 0)
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr error
	}{
		{
			name:    "vertex without project",
			cfg:     config.LLMConfig{Provider: config.ProviderVertex, Region: "us-central1"},
			wantErr: ErrNotConfigured,
		},
		{
			name:    "openai without key",
			cfg:     config.LLMConfig{Provider: config.ProviderOpenAI},
			wantErr: ErrNotConfigured,
		},
		{
			name: "openai",
			cfg:  config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o-mini"},
		},
		{
			name: "ollama",
			cfg:  config.LLMConfig{Provider: config.ProviderOllama, BaseURL: "http://localhost:11434", Model: "mistral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(context.Background(), tt.cfg)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}
