package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrDisabled is returned by the Disabled generator; it marks the
// permanent no-credential state for the process lifetime.
var ErrDisabled = errors.New("ai: text generation disabled")

// TextGenerator is the single narrow interface to the external
// text-generation collaborator. Its output is always untrusted and must
// pass the guardrail before use.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Disabled is the null generator used when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, int) (string, error) {
	return "", ErrDisabled
}

const systemRole = "You are a forensic analyst assistant. You explain findings in plain language; you never make judgments or predictions."

// OpenAIGenerator generates text through the OpenAI chat completion API.
// One request per call, no retries; the caller's context bounds the call.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
