package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
	"github.com/supertypeai/sectors-news-scraper/internal/refdata"
)

type ArticleStore interface {
	GetFeed(limit, offset int) ([]model.FeedArticle, error)
	GetFeedTotal() (int, error)
	GetAnnotatedByID(id int64) (*model.SingleArticle, error)
}

type ReferenceStore interface {
	Tables() (*refdata.Tables, error)
}

type ArticleHandler struct {
	repository ArticleStore
	reference  ReferenceStore
}

func NewArticleHandler(repository ArticleStore, reference ReferenceStore) *ArticleHandler {
	return &ArticleHandler{repository: repository, reference: reference}
}

func (h *ArticleHandler) GetFeed(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	articles, err := h.repository.GetFeed(limit, offset)
	if err != nil {
		slog.Error("error fetching feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetFeedTotal()
	if err != nil {
		slog.Error("error fetching feed total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var articleRes []ArticleResponse
	for _, a := range articles {
		articleRes = append(articleRes, toArticleResponse(a))
	}

	res := FeedResponse{
		Articles: articleRes,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	annotationID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid annotation id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.repository.GetAnnotatedByID(annotationID)
	if err != nil {
		slog.Error("error fetching article", "error", err, "annotation_id", annotationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	res := SingleArticleResponse{
		ArticleResponse: toArticleResponse(article.FeedArticle),
		Tags:            article.Tags,
		Tickers:         article.Tickers,
		Dimension:       article.Dimension,
		Summary:         article.Summary,
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetSubsectors(c *gin.Context) {
	tables, err := h.reference.Tables()
	if err != nil {
		slog.Error("error loading reference tables", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reference data error"})
		return
	}

	res := make([]SubsectorResponse, 0, len(tables.Subsectors))
	for slug, description := range tables.Subsectors {
		res = append(res, SubsectorResponse{Slug: slug, Description: description})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Slug < res[j].Slug })

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetFeedTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toArticleResponse(a model.FeedArticle) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Subsector:   a.Subsector,
		Sentiment:   a.Sentiment,
		Score:       a.Score,
		Publisher:   a.Publisher,
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
		URL:         a.URL,
	}
}

func getQueryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
