// Package ai drafts curated daily questions with an OpenAI chat model.
package ai

import (
	"context"
	"encoding/json"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/questionbank"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"strings"
)

var ErrNoQuestions = errors.NewSentinel("no questions in completion")

type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a client for the OpenAI API. An empty baseURL uses the public endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4
	}
	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

const MaxTokens = 4096

// DraftQuestions sends prompt as a single chat completion and parses the JSON array of questions in the reply.
//
// Every drafted question is validated. The reply may wrap the array in prose or code fences.
func (c *Client) DraftQuestions(ctx context.Context, prompt string) ([]trivia.Question, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return nil, errors.Wrap(ErrNoQuestions, "completion without choices")
	}
	return parseQuestions(completion.Choices[0].Message.Content)
}

func parseQuestions(content string) ([]trivia.Question, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end < start {
		return nil, errors.Wrap(ErrNoQuestions, "find JSON array", slog.Int("length", len(content)))
	}
	var records []questionbank.Record
	if err := json.Unmarshal([]byte(content[start:end+1]), &records); err != nil {
		return nil, errors.Wrap(err, "decode drafted questions")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrNoQuestions, "empty JSON array")
	}
	questions := make([]trivia.Question, 0, len(records))
	var errs []error
	for _, r := range records {
		q, err := r.ToQuestion()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		questions = append(questions, q)
	}
	if len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validate drafted questions")
	}
	return questions, nil
}
