// Package openai provides a generation client for OpenAI-compatible chat
// APIs (OpenAI itself, LM Studio, or any server speaking the same
// protocol). Sampling options without an OpenAI equivalent (top_k,
// repeat_penalty, num_ctx) are ignored by this backend.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"docqa/internal/llm"
)

var _ llm.Generator = (*Client)(nil)

// Config holds configuration for the OpenAI-compatible client.
type Config struct {
	// BaseURL overrides the API endpoint, e.g. an LM Studio server.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	// Local OpenAI-compatible servers usually accept any value.
	APIKeyEnv string
}

// Client wraps the go-openai chat completion API.
type Client struct {
	client *goopenai.Client
}

// New creates an OpenAI-compatible generation client.
func New(cfg Config) (*Client, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	if key == "" {
		key = "not-needed"
	}
	oaiCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{client: goopenai.NewClientWithConfig(oaiCfg)}, nil
}

// Generate runs one blocking chat completion.
func (c *Client) Generate(ctx context.Context, model string, messages []llm.Message, opts llm.Options) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    toChatMessages(messages),
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err, model)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion for model %s", model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toChatMessages(messages []llm.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

// classify maps API failures onto the typed taxonomy so callers branch on
// kind, not on message text.
func classify(err error, model string) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", llm.ErrModelNotFound, model)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", llm.ErrModelNotFound, model)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
	}
	if !errors.As(err, &apiErr) && !errors.As(err, &reqErr) {
		// Transport-level failure, the server never answered.
		return fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
	}
	return err
}
