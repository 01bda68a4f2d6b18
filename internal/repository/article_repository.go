package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) SaveArticle(article *model.Article) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO article(title, body, url, source, publisher, published_at, status)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.Body, article.URL, article.Source, article.Publisher, article.PublishedAt, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

func (r *ArticleRepository) GetArticleByID(id int64) (*model.Article, error) {
	var a model.Article
	err := r.db.QueryRow(`
		SELECT id, title, body, url, source, publisher, published_at, fetched_at, status
		FROM article
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.Body, &a.URL, &a.Source, &a.Publisher, &a.PublishedAt, &a.FetchedAt, &a.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ArticleRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE article SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *ArticleRepository) SaveError(articleID int64, message string, errorType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, message, errorType)
	return err
}

func (r *ArticleRepository) GetErrorCount(articleID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error WHERE article_id = $1
	`, articleID).Scan(&count)
	return count, err
}

// SaveAnnotationAndComplete stores the annotation and marks the article
// completed in one transaction, so a half-annotated article can never be
// observed.
func (r *ArticleRepository) SaveAnnotationAndComplete(annotation *model.Annotation) error {
	dimension, err := json.Marshal(annotation.Dimension)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO annotation(article_id, tags, tickers, subsector, sentiment, dimension, score, model_used)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, annotation.ArticleID, pq.Array(annotation.Tags), pq.Array(annotation.Tickers),
		annotation.Subsector, annotation.Sentiment, dimension, annotation.Score,
		annotation.ModelUsed).Scan(&annotation.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE article SET status = $1 WHERE id = $2
	`, model.StatusCompleted, annotation.ArticleID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ArticleRepository) GetFeed(limit, offset int) ([]model.FeedArticle, error) {
	rows, err := r.db.Query(`
		SELECT an.id, an.article_id, a.title, an.subsector, an.sentiment, an.score,
		       a.publisher, a.published_at, a.url
		FROM annotation an
		JOIN article a ON a.id = an.article_id
		ORDER BY a.published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.FeedArticle
	for rows.Next() {
		var f model.FeedArticle
		err := rows.Scan(&f.ID, &f.ArticleID, &f.Title, &f.Subsector, &f.Sentiment,
			&f.Score, &f.Publisher, &f.PublishedAt, &f.URL)
		if err != nil {
			return nil, err
		}
		articles = append(articles, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetFeedTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM annotation`).Scan(&total)
	return total, err
}

func (r *ArticleRepository) GetAnnotatedByID(id int64) (*model.SingleArticle, error) {
	var s model.SingleArticle
	var tags, tickers pq.StringArray
	var dimension []byte
	var summary sql.NullString

	err := r.db.QueryRow(`
		SELECT an.id, an.article_id, a.title, an.subsector, an.sentiment, an.score,
		       a.publisher, a.published_at, a.url,
		       an.tags, an.tickers, an.dimension, s.body
		FROM annotation an
		JOIN article a ON a.id = an.article_id
		LEFT JOIN article_summary s ON s.article_id = an.article_id
		WHERE an.id = $1
	`, id).Scan(&s.ID, &s.ArticleID, &s.Title, &s.Subsector, &s.Sentiment, &s.Score,
		&s.Publisher, &s.PublishedAt, &s.URL, &tags, &tickers, &dimension, &summary)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	s.Tags = tags
	s.Tickers = tickers
	s.Summary = summary.String
	if err := json.Unmarshal(dimension, &s.Dimension); err != nil {
		return nil, err
	}

	return &s, nil
}
