package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one classification sub-task. The five members are the
// closed set of per-article classifications; scoring and summarization
// are separate single-task flows.
type Category string

const (
	CategoryTags       Category = "tags"
	CategoryTickers    Category = "tickers"
	CategorySubsectors Category = "subsectors"
	CategorySentiment  Category = "sentiment"
	CategoryDimension  Category = "dimension"
)

var ErrUnknownCategory = errors.New("unknown classification category")

// Vocabulary carries the closed enumerations injected into prompts as
// in-text constraints.
type Vocabulary struct {
	Tags       []string
	Tickers    []string
	Subsectors []string
}

const (
	tagsPrompt = `You are a financial news analyst covering the Indonesia Stock Exchange (IDX).
Classify the news article below into topical tags.
Only use tags from this list: %s.
Return every tag that applies and nothing that is not on the list.

News article:
%s

%s`

	tickersPrompt = `You are a financial news analyst covering the Indonesia Stock Exchange (IDX).
Identify the IDX ticker symbols of every company mentioned in the news article below.
Valid tickers: %s.

News article:
%s

%s`

	subsectorsPrompt = `You are a financial news analyst covering the Indonesia Stock Exchange (IDX).
Determine the single subsector the news article below is most about.
Choose from these subsectors: %s.

News article:
%s

%s`

	sentimentPrompt = `You are a financial news analyst covering the Indonesia Stock Exchange (IDX).
Judge the sentiment of the news article below for investors.
Answer with exactly one of: positive, negative, neutral.

News article:
%s

%s`

	dimensionPrompt = `You are a financial news analyst covering the Indonesia Stock Exchange (IDX).
For the news article below, flag which aspects it gives meaningful information about.
Use 1 when the aspect is covered, 0 when it is not, and null when the article gives no signal.
Aspects: valuation, future, technical, financials, dividend, management, ownership, sustainability.

Title: %s
News article:
%s

%s`
)

const (
	tagsFormat       = `Respond with a JSON object only, no markdown, in this exact shape: {"tags": ["tag", "..."]}`
	tickersFormat    = `Respond with a JSON object only, no markdown, in this exact shape: {"tickers": ["SYMBOL", "..."]}`
	subsectorsFormat = `Respond with a JSON object only, no markdown, in this exact shape: {"subsector": "slug"}`
	sentimentFormat  = `Respond with a JSON object only, no markdown, in this exact shape: {"sentiment": "positive|negative|neutral"}`
	dimensionFormat  = `Respond with a JSON object only, no markdown, in this exact shape: {"valuation": 0, "future": 0, "technical": 0, "financials": 0, "dividend": 0, "management": 0, "ownership": 0, "sustainability": 0}`
)

// renderClassificationPrompt produces the full request text for one
// category: instructions, the closed vocabulary where the category has
// one, the article, and the machine-readable format contract.
func renderClassificationPrompt(category Category, title, body string, vocab Vocabulary) (string, error) {
	switch category {
	case CategoryTags:
		return fmt.Sprintf(tagsPrompt, strings.Join(vocab.Tags, ", "), body, tagsFormat), nil
	case CategoryTickers:
		return fmt.Sprintf(tickersPrompt, strings.Join(vocab.Tickers, ", "), body, tickersFormat), nil
	case CategorySubsectors:
		return fmt.Sprintf(subsectorsPrompt, strings.Join(vocab.Subsectors, ", "), body, subsectorsFormat), nil
	case CategorySentiment:
		return fmt.Sprintf(sentimentPrompt, body, sentimentFormat), nil
	case CategoryDimension:
		return fmt.Sprintf(dimensionPrompt, title, body, dimensionFormat), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}
