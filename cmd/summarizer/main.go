package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/supertypeai/sectors-news-scraper/db"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
	"github.com/supertypeai/sectors-news-scraper/internal/repository"
	"github.com/supertypeai/sectors-news-scraper/pkg/llm"
	"github.com/supertypeai/sectors-news-scraper/pkg/scrape"
)

const batchSize = 50

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	summaryRepo := repository.NewSummaryRepository(db.DB)

	var backends []llm.Backend
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		backends = append(backends, llm.NewGroqBackend(key))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		backends = append(backends, llm.NewOpenAIBackend(key))
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		backends = append(backends, llm.NewAnthropicBackend(key))
	}

	if len(backends) == 0 {
		slog.Error("no model backend API keys configured")
		return
	}

	extractor := scrape.NewExtractor(os.Getenv("PROXY_KEY"))
	summarizer := llm.NewSummarizer(llm.NewInvoker(backends...), extractor)

	articles, err := summaryRepo.GetArticlesNeedingSummary(batchSize)
	if err != nil {
		log.Fatalf("error fetching articles for summary: %v", err)
	}

	if len(articles) == 0 {
		slog.Info("no articles need summarizing, exiting")
		return
	}

	slog.Info("summarizing articles", "count", len(articles))

	ctx := context.Background()

	for _, article := range articles {
		title, body, err := summarizer.Summarize(ctx, article.URL)
		if err != nil {
			var rl *llm.RateLimitError
			if errors.As(err, &rl) {
				// Quota is shared across the batch; stop instead of
				// failing every remaining article the same way.
				log.Fatalf("backend rate limited, aborting run: %v", err)
			}
			slog.Error("error summarizing article", "error", err, "article_id", article.ID)
			continue
		}

		if title == "" && body == "" {
			slog.Warn("no summary produced for article", "article_id", article.ID, "url", article.URL)
			continue
		}

		summary := model.ArticleSummary{
			ArticleID: article.ID,
			Title:     title,
			Body:      body,
		}

		if err := summaryRepo.SaveSummary(&summary); err != nil {
			slog.Error("error saving summary", "error", err, "article_id", article.ID)
			continue
		}

		slog.Info("summary saved", "article_id", article.ID, "summary_id", summary.ID)
	}
}
