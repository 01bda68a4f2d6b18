package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/supertypeai/sectors-news-scraper/internal/model"
	"github.com/supertypeai/sectors-news-scraper/internal/refdata"
)

type fakeStore struct {
	feed      []model.FeedArticle
	feedTotal int
	article   *model.SingleArticle
	err       error
}

func (f *fakeStore) GetFeed(limit int, offset int) ([]model.FeedArticle, error) {
	return f.feed, f.err
}

func (f *fakeStore) GetFeedTotal() (int, error) {
	return f.feedTotal, f.err
}

func (f *fakeStore) GetAnnotatedByID(id int64) (*model.SingleArticle, error) {
	return f.article, f.err
}

type fakeReference struct {
	tables *refdata.Tables
	err    error
}

func (f *fakeReference) Tables() (*refdata.Tables, error) {
	return f.tables, f.err
}

func newTestRouter(store ArticleStore, reference ReferenceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(store, reference)
	r.GET("/feed", h.GetFeed)
	r.GET("/feed/:id", h.GetArticle)
	r.GET("/subsectors", h.GetSubsectors)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetFeed_ReturnArticles(t *testing.T) {
	store := &fakeStore{
		feed: []model.FeedArticle{
			{ID: 1, ArticleID: 10, Title: "BBCA lifts dividend", Subsector: "banks", Sentiment: "positive", Score: 85},
		},
		feedTotal: 1,
	}

	r := newTestRouter(store, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed?limit=10&offset=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, len(res.Articles), 1)
	assert.Equal(t, res.Articles[0].Subsector, "banks")
	assert.Equal(t, res.Articles[0].Score, 85)
}

func TestGetFeed_DatabaseError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}

	r := newTestRouter(store, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetArticle_ReturnsAnnotation(t *testing.T) {
	one := 1
	store := &fakeStore{
		article: &model.SingleArticle{
			FeedArticle: model.FeedArticle{ID: 7, ArticleID: 10, Title: "BBCA lifts dividend", Sentiment: "positive"},
			Tags:        []string{"Dividend"},
			Tickers:     []string{"BBCA"},
			Dimension:   model.Dimension{Dividend: &one},
			Summary:     "Bank Central Asia raised payouts.",
		},
	}

	r := newTestRouter(store, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SingleArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, res.Tags, []string{"Dividend"})
	assert.Equal(t, res.Tickers, []string{"BBCA"})
	assert.Equal(t, res.Summary, "Bank Central Asia raised payouts.")
}

func TestGetArticle_NotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArticle_InvalidID(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubsectors(t *testing.T) {
	reference := &fakeReference{
		tables: &refdata.Tables{
			Subsectors: map[string]string{
				"banks":             "Commercial banks",
				"telecommunication": "Telecom operators",
			},
		},
	}

	r := newTestRouter(&fakeStore{}, reference)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/subsectors", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []SubsectorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, len(res), 2)
	assert.Equal(t, res[0].Slug, "banks")
}

func TestGetHealth_Unhealthy(t *testing.T) {
	r := newTestRouter(&fakeStore{err: errors.New("down")}, &fakeReference{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
