package llm

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqBackend wires Groq through the OpenAI client; Groq serves an
// OpenAI-compatible chat completions endpoint.
func NewGroqBackend(apiKey string) *OpenAIBackend {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	)
	return &OpenAIBackend{
		client: &client,
		model:  openai.ChatModel("llama-3.3-70b-versatile"),
		name:   "groq-llama-3.3-70b",
	}
}
