package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/supertypeai/sectors-news-scraper/db"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
	"github.com/supertypeai/sectors-news-scraper/internal/refdata"
	"github.com/supertypeai/sectors-news-scraper/internal/repository"
	"github.com/supertypeai/sectors-news-scraper/pkg/llm"
)

const maxRetries = 3

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepository := repository.NewArticleRepository(db.DB)

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	provider := refdata.NewProvider(db.DB, dataDir)
	tables, err := provider.Tables()
	if err != nil {
		log.Fatalf("error loading reference tables: %v", err)
	}

	backends := backendsFromEnv()
	if len(backends) == 0 {
		slog.Error("no model backend API keys configured")
		return
	}

	invoker := llm.NewInvoker(backends...)
	classifier := llm.NewClassifier(invoker, llm.Vocabulary{
		Tags:       tables.Tags,
		Tickers:    tables.Symbols(),
		Subsectors: tables.SubsectorSlugs(),
	})
	scorer := llm.NewScorer(invoker)

	ctx := context.Background()

	for {
		id, err := db.PopFromQueue(db.AnnotateQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		articleID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slog.Error("invalid article id in queue", "id", id, "error", err)
			continue
		}

		errorCount, err := articleRepository.GetErrorCount(articleID)
		if err != nil {
			slog.Error("error getting error count", "error", err, "article_id", articleID)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("article exceeded max retries, marking as failed", "article_id", articleID, "error_count", errorCount)
			articleRepository.UpdateStatus(articleID, model.StatusFailed)
			continue
		}

		article, err := articleRepository.GetArticleByID(articleID)
		if err != nil {
			slog.Error("error getting article from DB", "error", err, "article_id", articleID)
			continue
		}

		if article == nil {
			slog.Warn("article not found in DB", "article_id", articleID)
			continue
		}

		classification, err := classifier.ClassifyArticle(ctx, article.Title, article.Body)
		if err != nil {
			slog.Error("error classifying article", "error", err, "article_id", articleID)

			articleRepository.SaveError(articleID, err.Error(), "classification_error")
			db.PushToQueue(db.AnnotateQueueKey, strconv.FormatInt(articleID, 10))
			continue
		}

		score, err := scorer.Score(ctx, article.Body, article.PublishedAt.Format("2006-01-02"), article.URL)
		if err != nil {
			slog.Error("error scoring article", "error", err, "article_id", articleID)

			articleRepository.SaveError(articleID, err.Error(), "scoring_error")
			db.PushToQueue(db.AnnotateQueueKey, strconv.FormatInt(articleID, 10))
			continue
		}

		annotation := model.Annotation{
			ArticleID: article.ID,
			Tags:      classification.Tags,
			Tickers:   classification.Tickers,
			Subsector: classification.Subsector,
			Sentiment: classification.Sentiment,
			Dimension: toModelDimension(classification.Dimension),
			Score:     score,
			ModelUsed: classification.ModelUsed,
		}

		err = articleRepository.SaveAnnotationAndComplete(&annotation)
		if err != nil {
			slog.Error("error saving annotation", "error", err, "article_id", articleID)
			continue
		}

		slog.Info("article annotated successfully", "article_id", article.ID, "score", score)
	}
}

func backendsFromEnv() []llm.Backend {
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
	return backends
}

func toModelDimension(d llm.Dimension) model.Dimension {
	return model.Dimension{
		Valuation:      d.Valuation,
		Future:         d.Future,
		Technical:      d.Technical,
		Financials:     d.Financials,
		Dividend:       d.Dividend,
		Management:     d.Management,
		Ownership:      d.Ownership,
		Sustainability: d.Sustainability,
	}
}
