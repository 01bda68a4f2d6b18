package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supertypeai/sectors-news-scraper/pkg/textutil"
)

const summaryPrompt = `Analyze this news article and provide both a title and summary.
For the title: create a one sentence title that is not misleading and gives general understanding.
For the body: provide a concise, maximum 2 sentences summary highlighting main points, key events, and financial metrics.
For company mentions, maintain the format 'Company Name (TICKER)'.

News: %s

%s`

const summaryFormat = `Respond with a JSON object only, no markdown, in this exact shape: {"title": "...", "body": "..."}`

// TextExtractor yields an article's plain text, empty on total failure.
// pkg/scrape provides the production implementation.
type TextExtractor interface {
	Extract(ctx context.Context, url string) string
}

// Summarizer fetches, normalizes, and summarizes one article per call.
type Summarizer struct {
	invoker   *Invoker
	extractor TextExtractor
}

func NewSummarizer(invoker *Invoker, extractor TextExtractor) *Summarizer {
	return &Summarizer{invoker: invoker, extractor: extractor}
}

// Summarize returns a (title, body) pair for the article at url. The
// empty pair is the sentinel for "nothing could be produced": extraction
// came back empty, or every backend failed. Unlike classification and
// scoring, a rate-limited backend stops the whole call so the batch
// runner can halt instead of burning through the chain.
func (s *Summarizer) Summarize(ctx context.Context, url string) (string, string, error) {
	text := s.extractor.Extract(ctx, url)
	if text == "" {
		return "", "", nil
	}

	prompt := fmt.Sprintf(summaryPrompt, textutil.Normalize(text), summaryFormat)

	for _, backend := range s.invoker.backends {
		raw, err := backend.Complete(ctx, prompt)
		s.invoker.pace.Wait(ctx)

		if err != nil {
			var rl *RateLimitError
			if errors.As(err, &rl) {
				return "", "", err
			}
			slog.Error("backend failed to summarize", "backend", backend.Name(), "error", err)
			continue
		}

		var out struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &out); err != nil {
			slog.Error("backend returned malformed summary JSON", "backend", backend.Name(), "error", err)
			continue
		}

		if out.Title == "" || out.Body == "" {
			slog.Warn("backend returned incomplete summary", "backend", backend.Name())
			continue
		}

		return out.Title, out.Body, nil
	}

	return "", "", nil
}
