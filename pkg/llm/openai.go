package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIBackend struct {
	client *openai.Client
	model  openai.ChatModel
	name   string
}

func NewOpenAIBackend(apiKey string) *OpenAIBackend {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIBackend{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
		name:   "gpt-4o-mini",
	}
}

func (b *OpenAIBackend) Name() string {
	return b.name
}

func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: b.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		return "", translateOpenAIError(b.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", b.name)
	}

	return resp.Choices[0].Message.Content, nil
}

func translateOpenAIError(backend string, err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Backend: backend,
			Daily:   isDailyLimit(apierr.Error()),
			Err:     err,
		}
	}
	return fmt.Errorf("%s API error: %w", backend, err)
}
