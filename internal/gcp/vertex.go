package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

// AnswerSystemPrompt frames every answering request sent to Gemini.
const AnswerSystemPrompt = "You are a legal-aware assistant that answers questions about a single supplied document. You must output your response as a valid JSON object."

// VertexConfig configures the Gemini answering model.
type VertexConfig struct {
	ProjectID       string
	Region          string
	Model           string
	Temperature     float32
	CredentialsFile string
}

// VertexClient holds the pre-configured answering model.
type VertexClient struct {
	AnswerModel *genai.GenerativeModel
	baseClient  *genai.Client
}

// NewVertexClient creates a new client holding the answering model.
func NewVertexClient(ctx context.Context, cfg VertexConfig) (*VertexClient, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region, opts...)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	answerModel := baseClient.GenerativeModel(cfg.Model)
	answerModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(AnswerSystemPrompt)},
	}
	answerModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(cfg.Temperature),
	}

	return &VertexClient{
		AnswerModel: answerModel,
		baseClient:  baseClient,
	}, nil
}

// Generate sends the prompt as a single text part and returns the completion.
func (c *VertexClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.AnswerModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from gemini: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
