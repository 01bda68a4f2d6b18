package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/supertypeai/sectors-news-scraper/db"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
	"github.com/supertypeai/sectors-news-scraper/internal/repository"
)

type feedItem struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Publisher   string `json:"publisher"`
	PublishedAt string `json:"published_at"`
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if len(os.Args) < 2 {
		log.Fatal("usage: ingest <feed-file.json>")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("error reading feed file: %v", err)
	}

	var items []feedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatalf("error parsing feed file: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	repo := repository.NewArticleRepository(db.DB)

	var saved, duplicated, errors int

	for _, item := range items {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt, err = time.Parse("2006-01-02", item.PublishedAt)
			if err != nil {
				slog.Error("invalid published_at, skipping", "url", item.URL, "published_at", item.PublishedAt)
				errors++
				continue
			}
		}

		article := model.Article{
			Title:       item.Title,
			Body:        item.Body,
			URL:         item.URL,
			Source:      item.Source,
			Publisher:   item.Publisher,
			PublishedAt: publishedAt,
		}

		success, err := repo.SaveArticle(&article)
		if err != nil {
			slog.Error("error saving article", "url", item.URL, "error", err)
			errors++
			continue
		}

		if !success {
			slog.Info("duplicate article skipped", "url", item.URL)
			duplicated++
			continue
		}

		saved++

		id := strconv.FormatInt(article.ID, 10)
		if err := db.PushToQueue(db.AnnotateQueueKey, id); err != nil {
			slog.Error("error pushing to annotate queue", "error", err, "article_id", article.ID)
			errors++
		}
	}

	slog.Info("ingest finished", "saved", saved, "duplicated", duplicated, "errors", errors)
}
