package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/hackrx-docqa/internal/llm"
)

func stubGenerator(completion string, err error) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return completion, err
	})
}

func TestCleanCompletion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"answers":["A"]}`, `{"answers":["A"]}`},
		{"fenced", "```json\n{\"answers\":[\"A\"]}\n```", `{"answers":["A"]}`},
		{"padded fence", "  \n```json {\"answers\":[]} ```\n", `{"answers":[]}`},
		{"trailing fence only", "{\"answers\":[\"A\"]}\n```", `{"answers":["A"]}`},
		{"untagged fence keeps prefix", "```\n{}\n```", "```\n{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanCompletion(tt.in))
		})
	}
}

func TestAnswer(t *testing.T) {
	a := NewAnswerer(stubGenerator("```json\n{\"answers\":[\"A\",\"B\"]}\n```", nil))

	res, err := a.Answer(context.Background(), "prompt", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Answers)
}

func TestAnswerPassesPrompt(t *testing.T) {
	var got string
	a := NewAnswerer(llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		got = prompt
		return `{"answers":["A"]}`, nil
	}))

	_, err := a.Answer(context.Background(), "the prompt", 1)
	require.NoError(t, err)
	assert.Equal(t, "the prompt", got)
}

func TestAnswerErrors(t *testing.T) {
	tests := []struct {
		name       string
		completion string
		genErr     error
		count      int
		contains   string
	}{
		{name: "generator failure", genErr: errors.New("quota exceeded"), count: 1, contains: "quota exceeded"},
		{name: "not json", completion: "not json", count: 1, contains: "not a JSON object"},
		{name: "json array", completion: `["A"]`, count: 1, contains: "not a JSON object"},
		{name: "missing answers", completion: `{"result":["A"]}`, count: 1, contains: "no answers field"},
		{name: "answers not a list", completion: `{"answers":"A"}`, count: 1, contains: "not a list"},
		{name: "answers null", completion: `{"answers":null}`, count: 1, contains: "not a list"},
		{name: "non-string answer", completion: `{"answers":["A", 2]}`, count: 2, contains: "answer 2 is not a string"},
		{name: "null answer", completion: `{"answers":[null]}`, count: 1, contains: "answer 1 is not a string"},
		{name: "too few answers", completion: `{"answers":["A"]}`, count: 2, contains: "1 answers for 2 questions"},
		{name: "too many answers", completion: `{"answers":["A","B","C"]}`, count: 2, contains: "3 answers for 2 questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswerer(stubGenerator(tt.completion, tt.genErr))
			res, err := a.Answer(context.Background(), "prompt", tt.count)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrModel)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
