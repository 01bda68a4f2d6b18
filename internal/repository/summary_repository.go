package repository

import (
	"database/sql"

	"github.com/supertypeai/sectors-news-scraper/internal/model"
)

type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// GetArticlesNeedingSummary returns articles that have no summary row yet.
func (r *SummaryRepository) GetArticlesNeedingSummary(limit int) ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.title, a.body, a.url, a.source, a.publisher, a.published_at, a.fetched_at, a.status
		FROM article a
		LEFT JOIN article_summary s ON s.article_id = a.id
		WHERE s.id IS NULL
		ORDER BY a.id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.URL, &a.Source, &a.Publisher, &a.PublishedAt, &a.FetchedAt, &a.Status)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *SummaryRepository) SaveSummary(summary *model.ArticleSummary) error {
	return r.db.QueryRow(`
		INSERT INTO article_summary(article_id, title, body)
		VALUES($1, $2, $3)
		RETURNING id
	`, summary.ArticleID, summary.Title, summary.Body).Scan(&summary.ID)
}

func (r *SummaryRepository) GetSummaryByArticleID(articleID int64) (*model.ArticleSummary, error) {
	var s model.ArticleSummary
	err := r.db.QueryRow(`
		SELECT id, article_id, title, body, created_at
		FROM article_summary
		WHERE article_id = $1
	`, articleID).Scan(&s.ID, &s.ArticleID, &s.Title, &s.Body, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &s, nil
}
