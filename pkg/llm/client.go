package llm

import (
	"context"
	"fmt"
	"strings"
)

// Backend is one model provider in the fallback chain. Complete sends a
// fully rendered prompt and returns the raw response text. Adapters
// translate vendor rate-limit errors into *RateLimitError; every other
// failure comes back as a plain wrapped error.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// RateLimitError marks a backend as rate limited. Daily is set when the
// vendor message carries a per-day quota signature, meaning the backend
// is unusable for the rest of the run.
type RateLimitError struct {
	Backend string
	Daily   bool
	Err     error
}

func (e *RateLimitError) Error() string {
	if e.Daily {
		return fmt.Sprintf("%s hit its daily token limit: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s rate limited: %v", e.Backend, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

func isDailyLimit(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "tokens per day") ||
		strings.Contains(message, "per day") ||
		strings.Contains(message, "tpd")
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
