package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lllllllleong/hackrx-docqa/internal/llm"
	"github.com/Lllllllleong/hackrx-docqa/internal/models"
)

// Answerer turns a prompt into an AnswerSet using a generative model.
type Answerer struct {
	generator llm.Generator
}

func NewAnswerer(generator llm.Generator) *Answerer {
	return &Answerer{generator: generator}
}

// Answer makes a single model call and checks the completion's shape. Every
// failure, including a wrong number of answers, is an ErrModel.
func (a *Answerer) Answer(ctx context.Context, prompt string, questionCount int) (*models.AnswerSet, error) {
	completion, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, stageError(ErrModel, err)
	}

	cleaned := cleanCompletion(completion)
	answers, err := parseAnswers(cleaned)
	if err != nil {
		slog.Error("Model response did not have the expected format", "error", err, "response", cleaned)
		return nil, stageError(ErrModel, err)
	}
	if len(answers.Answers) != questionCount {
		err := fmt.Errorf("model returned %d answers for %d questions", len(answers.Answers), questionCount)
		slog.Error("Model answer count mismatch", "error", err, "response", cleaned)
		return nil, stageError(ErrModel, err)
	}
	return answers, nil
}

// cleanCompletion removes the markdown fence some models wrap JSON in.
func cleanCompletion(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(s, "```"); ok {
		s = strings.TrimSpace(rest)
	}
	return s
}

func parseAnswers(text string) (*models.AnswerSet, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("model response is not a JSON object: %w", err)
	}

	raw, ok := obj["answers"]
	if !ok {
		return nil, errors.New("model response has no answers field")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New("model response answers field is not a list")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.New("model response answers field is not a list")
	}

	answers := make([]string, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &answers[i]); err != nil || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, fmt.Errorf("answer %d is not a string", i+1)
		}
	}
	return &models.AnswerSet{Answers: answers}, nil
}
