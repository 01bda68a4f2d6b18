package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicBackend struct {
	client *anthropic.Client
	model  anthropic.Model
	name   string
}

func NewAnthropicBackend(apiKey string) *AnthropicBackend {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicBackend{
		client: &client,
		model:  anthropic.ModelClaude3_5HaikuLatest,
		name:   "claude-3.5-haiku",
	}
}

func (b *AnthropicBackend) Name() string {
	return b.name
}

func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     b.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return "", b.translate(err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from %s", b.name)
	}

	return resp.Content[0].Text, nil
}

func (b *AnthropicBackend) translate(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Backend: b.name,
			Daily:   isDailyLimit(apierr.Error()),
			Err:     err,
		}
	}
	return fmt.Errorf("%s API error: %w", b.name, err)
}
