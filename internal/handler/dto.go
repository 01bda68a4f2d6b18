package handler

import "github.com/supertypeai/sectors-news-scraper/internal/model"

type ArticleResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subsector   string `json:"subsector"`
	Sentiment   string `json:"sentiment"`
	Score       int    `json:"score"`
	Publisher   string `json:"publisher"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

type FeedResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type SingleArticleResponse struct {
	ArticleResponse
	Tags      []string        `json:"tags"`
	Tickers   []string        `json:"tickers"`
	Dimension model.Dimension `json:"dimension"`
	Summary   string          `json:"summary,omitempty"`
}

type SubsectorResponse struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
