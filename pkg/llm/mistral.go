package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Default connection and sampling parameters, matching the original bot
const (
	DefaultBaseURL     = "https://api.mistral.ai/v1"
	DefaultModel       = "mistral-small-latest"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
)

// Config holds the connection and sampling parameters for the Mistral client
type Config struct {
	APIKey      string
	BaseURL     string  // defaults to DefaultBaseURL
	Model       string  // defaults to DefaultModel
	MaxTokens   int64   // defaults to DefaultMaxTokens
	Temperature float64 // defaults to DefaultTemperature; set NoTemperature for 0
}

// NoTemperature selects a temperature of zero, since the zero value of
// Config.Temperature means "use the default"
const NoTemperature = -1

// MistralClient calls Mistral's chat completion endpoint, which speaks the
// OpenAI wire format
type MistralClient struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewMistralClient creates a client from the given config, filling in
// defaults for any unset parameter
func NewMistralClient(cfg Config) *MistralClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	switch {
	case cfg.Temperature == NoTemperature:
		cfg.Temperature = 0
	case cfg.Temperature == 0:
		cfg.Temperature = DefaultTemperature
	}

	return &MistralClient{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content
func (c *MistralClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
