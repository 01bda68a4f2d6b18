package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/supertypeai/sectors-news-scraper/db"
	"github.com/supertypeai/sectors-news-scraper/internal/handler"
	"github.com/supertypeai/sectors-news-scraper/internal/refdata"
	"github.com/supertypeai/sectors-news-scraper/internal/repository"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	reference := refdata.NewProvider(db.DB, dataDir)
	articleHandler := handler.NewArticleHandler(articleRepo, reference)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/feed/:id", articleHandler.GetArticle)
	r.GET("/feed", articleHandler.GetFeed)
	r.GET("/subsectors", articleHandler.GetSubsectors)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
