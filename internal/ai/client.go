// Package ai wraps the external chat-completion API. The core treats the
// API as stateless; retries, if any, are the caller's business and the
// client performs none.
package ai

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"chatfeed/internal/bot"
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient builds a client for the given endpoint. baseURL points at an
// OpenAI-compatible API root, e.g. Groq's https://api.groq.com/openai/v1.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: slog.Default().With("service", "ai"),
	}
}

// Complete implements bot.Completer with a single chat-completion
// request.
func (c *Client) Complete(ctx context.Context, turns []bot.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    t.Role,
			Name:    t.Name,
			Content: t.Content,
		}
	}

	c.logger.Debug("Requesting completion", "model", c.model, "turns", len(messages))
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ bot.Completer = (*Client)(nil)
