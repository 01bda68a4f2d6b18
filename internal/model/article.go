package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Article struct {
	ID          int64
	Title       string
	Body        string
	URL         string
	Source      string
	Publisher   string
	PublishedAt time.Time
	FetchedAt   time.Time
	Status      string
}

// Dimension flags which qualitative aspects an article touches on.
// A nil entry means the model gave no signal for that aspect.
type Dimension struct {
	Valuation      *int `json:"valuation"`
	Future         *int `json:"future"`
	Technical      *int `json:"technical"`
	Financials     *int `json:"financials"`
	Dividend       *int `json:"dividend"`
	Management     *int `json:"management"`
	Ownership      *int `json:"ownership"`
	Sustainability *int `json:"sustainability"`
}

type Annotation struct {
	ID          int64
	ArticleID   int64
	Tags        []string
	Tickers     []string
	Subsector   string
	Sentiment   string
	Dimension   Dimension
	Score       int
	ModelUsed   string
	AnnotatedAt time.Time
}

type ArticleSummary struct {
	ID        int64
	ArticleID int64
	Title     string
	Body      string
	CreatedAt time.Time
}

type ProcessingError struct {
	ID           int64
	ArticleID    int64
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}

type FeedArticle struct {
	ID          int64
	ArticleID   int64
	Title       string
	Subsector   string
	Sentiment   string
	Score       int
	Publisher   string
	PublishedAt time.Time
	URL         string
}

type SingleArticle struct {
	FeedArticle
	Tags      []string
	Tickers   []string
	Dimension Dimension
	Summary   string
}
