package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Dimension mirrors the eight-aspect mapping returned for the dimension
// category. Nil means the model gave no signal for that aspect.
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

// Classification is the aggregate result for one article. It only
// exists when all five categories succeeded; there is no partial form.
type Classification struct {
	Tags      []string
	Tickers   []string
	Subsector string
	Sentiment string
	Dimension Dimension
	ModelUsed string
}

// Classifier sequences the five classification categories per article
// through the backend chain.
type Classifier struct {
	invoker *Invoker
	vocab   Vocabulary
	tagSet  map[string]struct{}
}

func NewClassifier(invoker *Invoker, vocab Vocabulary) *Classifier {
	tagSet := make(map[string]struct{}, len(vocab.Tags))
	for _, tag := range vocab.Tags {
		tagSet[tag] = struct{}{}
	}
	return &Classifier{invoker: invoker, vocab: vocab, tagSet: tagSet}
}

// ClassifyArticle runs all five categories and returns the aggregate
// result. Any single category failure voids the whole article; no
// partial classification is ever returned. The categories run strictly
// one at a time because the cheapest backend enforces a tight per-key
// rate limit.
func (c *Classifier) ClassifyArticle(ctx context.Context, title, body string) (*Classification, error) {
	tags, model, err := c.classifyTags(ctx, body)
	if err != nil {
		return nil, c.fail(CategoryTags, err)
	}

	tickers, err := c.classifyTickers(ctx, body)
	if err != nil {
		return nil, c.fail(CategoryTickers, err)
	}

	subsector, err := c.classifySubsector(ctx, body)
	if err != nil {
		return nil, c.fail(CategorySubsectors, err)
	}

	sentiment, err := c.classifySentiment(ctx, body)
	if err != nil {
		return nil, c.fail(CategorySentiment, err)
	}

	dimension, err := c.classifyDimension(ctx, title, body)
	if err != nil {
		return nil, c.fail(CategoryDimension, err)
	}

	return &Classification{
		Tags:      tags,
		Tickers:   tickers,
		Subsector: subsector,
		Sentiment: sentiment,
		Dimension: dimension,
		ModelUsed: model,
	}, nil
}

func (c *Classifier) fail(category Category, err error) error {
	slog.Error("classification step failed, failing entire article", "category", string(category), "error", err)
	return fmt.Errorf("classify %s: %w", category, err)
}

func (c *Classifier) classifyTags(ctx context.Context, body string) ([]string, string, error) {
	prompt, err := renderClassificationPrompt(CategoryTags, "", body, c.vocab)
	if err != nil {
		return nil, "", err
	}

	var out struct {
		Tags []string `json:"tags"`
	}
	model, err := c.invoker.Invoke(ctx, prompt, &out)
	if err != nil {
		return nil, "", err
	}

	return filterTags(out.Tags, c.tagSet), model, nil
}

func (c *Classifier) classifyTickers(ctx context.Context, body string) ([]string, error) {
	prompt, err := renderClassificationPrompt(CategoryTickers, "", body, c.vocab)
	if err != nil {
		return nil, err
	}

	var out struct {
		Tickers []string `json:"tickers"`
	}
	// Tickers are returned as-is; unlike tags they are not filtered
	// against the reference list.
	if _, err := c.invoker.Invoke(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out.Tickers, nil
}

func (c *Classifier) classifySubsector(ctx context.Context, body string) (string, error) {
	prompt, err := renderClassificationPrompt(CategorySubsectors, "", body, c.vocab)
	if err != nil {
		return "", err
	}

	var out struct {
		Subsector string `json:"subsector"`
	}
	// Same permissiveness as tickers: the returned slug is not checked
	// against the subsector table.
	if _, err := c.invoker.Invoke(ctx, prompt, &out); err != nil {
		return "", err
	}
	return out.Subsector, nil
}

func (c *Classifier) classifySentiment(ctx context.Context, body string) (string, error) {
	prompt, err := renderClassificationPrompt(CategorySentiment, "", body, c.vocab)
	if err != nil {
		return "", err
	}

	var out struct {
		Sentiment string `json:"sentiment"`
	}
	if _, err := c.invoker.Invoke(ctx, prompt, &out); err != nil {
		return "", err
	}
	return out.Sentiment, nil
}

func (c *Classifier) classifyDimension(ctx context.Context, title, body string) (Dimension, error) {
	prompt, err := renderClassificationPrompt(CategoryDimension, title, body, c.vocab)
	if err != nil {
		return Dimension{}, err
	}

	var raw json.RawMessage
	if _, err := c.invoker.Invoke(ctx, prompt, &raw); err != nil {
		return Dimension{}, err
	}
	return completeDimension(raw), nil
}

// completeDimension always yields all eight keys. A response that is
// valid JSON but not an object degrades to an all-null mapping instead
// of failing the category.
func completeDimension(raw json.RawMessage) Dimension {
	var d Dimension
	if err := json.Unmarshal(raw, &d); err != nil {
		return Dimension{}
	}
	return d
}

// filterTags keeps only known tags, deduplicated in first-seen order.
func filterTags(rawTags []string, valid map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(rawTags))
	kept := make([]string, 0, len(rawTags))
	for _, tag := range rawTags {
		if _, ok := valid[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		kept = append(kept, tag)
	}
	return kept
}
