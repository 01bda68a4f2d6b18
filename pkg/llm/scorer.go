package llm

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// scoreCeiling caps the final score: up to 100 from the main criteria
// plus bonus points, clamped rather than rejected.
const scoreCeiling = 150

const scoringPrompt = `You are a strict editor scoring financial news for the Indonesia Stock Exchange (IDX).
Score the news article below using these criteria:

%s

Article source domain: %s
Article date: %s
Current datetime: %s

News article:
%s

%s`

const scoringFormat = `Respond with a JSON object only, no markdown, in this exact shape: {"score": 0}`

// Scorer produces a single quality score per article through the same
// backend fallback chain as classification.
type Scorer struct {
	invoker *Invoker
	now     func() time.Time
}

func NewScorer(invoker *Invoker) *Scorer {
	return &Scorer{invoker: invoker, now: time.Now}
}

// Score rates the article body against the scoring rubric. The source
// URL contributes only its host as a credibility signal; an unparseable
// URL degrades to an empty host rather than failing the request.
func (s *Scorer) Score(ctx context.Context, body, articleDate, source string) (int, error) {
	prompt := fmt.Sprintf(
		scoringPrompt,
		scoringCriteria,
		extractHost(source),
		articleDate,
		s.now().Format(time.RFC3339),
		body,
		scoringFormat,
	)

	var out struct {
		Score int `json:"score"`
	}
	if _, err := s.invoker.Invoke(ctx, prompt, &out); err != nil {
		return 0, err
	}

	return clampScore(out.Score), nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > scoreCeiling {
		return scoreCeiling
	}
	return score
}

func extractHost(source string) string {
	parsed, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return parsed.Host
}

const scoringCriteria = `News Article Scoring Criteria (0-100).

1. Timeliness (0-10)
Keywords: "recent", "today", "this week", "Q3 2024", "latest market movement".
Score 0-2: Article is outdated (more than 2 weeks old) and does not reflect current market conditions.
Score 3-5: Article is somewhat recent (published within the last 2 weeks) but may not be directly tied to current market movements.
Score 6-8: Article is published within the last week and covers recent developments related to the Indonesia Stock Market.
Score 9-10: Article is very recent (published within the last 24-48 hours) and is highly relevant to ongoing market conditions.

2. Source Credibility (0-10)
Keywords: "Bloomberg", "Reuters", "Kontan", "Bisnis Indonesia", "IDX", "OJK".
Score 0-2: Article is from an unknown or unreliable source with no established credibility.
Score 3-5: Article is from a moderately credible source, such as a regional news outlet or less-known publication.
Score 6-8: Article is from a well-established national news outlet in Indonesia with some authority in financial reporting.
Score 9-10: Article is from a top-tier, highly credible source with a strong reputation in financial markets (e.g., Bloomberg, IDX official reports).

3. Clarity and Structure (0-10)
Keywords: "clear headline", "well-structured", "organized", "informative lead".
Score 0-2: Article is poorly structured, with unclear headlines and a confusing body.
Score 3-5: Article is somewhat organized but lacks clarity in its lead or body.
Score 6-8: Article is well-organized, with a clear headline and body that is easy to follow.
Score 9-10: Article is excellently structured, with a highly informative headline, lead, and logically organized body.

4. Relevance to the Indonesia Stock Market (0-15)
Keywords: "IDX", "JCI", "Jakarta Composite Index", "Indonesian companies", "OJK regulations".
Score 0-5: Article has little to no relevance to the IDX or the Indonesian stock market.
Score 6-10: Article discusses some relevant aspects of the Indonesian market, such as general market movements or non-specific company events.
Score 11-15: Article is directly relevant to key drivers of the Indonesian stock market, including specific IDX-listed companies, regulatory changes, or major sector developments.

5. Depth of Analysis (0-15)
Keywords: "detailed analysis", "market data", "earnings report", "sector outlook".
Score 0-5: Article provides only superficial coverage, with little to no analysis or data.
Score 6-10: Article includes some level of analysis, such as basic data or expert opinions, but lacks depth.
Score 11-15: Article offers a comprehensive analysis with detailed data, expert insights, and thorough exploration of market implications.

6. Financial Data Inclusion (0-10)
Keywords: "earnings", "stock price", "P/E ratio", "ROE", "dividends".
Score 0-2: Article includes no financial data relevant to the Indonesian market.
Score 3-5: Article includes basic financial data, such as stock prices or general market indices, with limited context.
Score 6-8: Article includes detailed financial metrics, such as earnings, ratios, or dividends, with some analysis.
Score 9-10: Article is rich in relevant financial data, providing extensive metrics and detailed analysis specific to Indonesian companies or sectors.

7. Balanced Reporting (0-5)
Keywords: "balanced view", "multiple perspectives", "neutral tone", "pros and cons".
Score 0-1: Article is highly biased, presenting a one-sided view without acknowledging alternative perspectives.
Score 2-3: Article attempts some balance but is still somewhat skewed or lacks depth in presenting multiple viewpoints.
Score 4-5: Article is well-balanced, presenting multiple perspectives and a neutral tone.

8. Sector and Industry Focus (0-10)
Keywords: "banking sector", "telecom industry", "consumer goods", "mining", "energy", "manufacturing".
Score 0-2: Article lacks any clear sector or industry focus relevant to Indonesia.
Score 3-5: Article discusses sectors or industries in general terms without specificity.
Score 6-8: Article provides a focused discussion on a specific sector or industry relevant to the Indonesian market.
Score 9-10: Article is highly specific, with in-depth coverage of key sectors or industries.

9. Market Impact Relevance (0-10)
Keywords: "market movement", "investor sentiment", "stock price impact", "IDX fluctuations".
Score 0-2: Article does not discuss or predict any market impact.
Score 3-5: Article mentions potential market impacts but lacks detail or analysis.
Score 6-8: Article discusses market impacts with a reasonable degree of detail, including potential effects on stock prices or investor sentiment.
Score 9-10: Article clearly outlines both immediate and long-term market impacts, with detailed analysis of how news might influence the IDX or specific stocks.

10. Forward-Looking Statements (0-10)
Keywords: "future outlook", "market trend", "forecast", "projections", "strategic move".
Score 0-2: Article contains no forward-looking statements or projections.
Score 3-5: Article offers basic projections or trends but lacks depth.
Score 6-8: Article provides well-informed short-term and some long-term projections relevant to the Indonesian market.
Score 9-10: Article includes detailed and insightful projections, offering a clear outlook for both short-term and long-term market developments in Indonesia.

Bonus Criteria for High-Quality News (Additional Points)

1. Primary CTA (Up to 5 Points Each). Does the article mention any of the following?
- Dividend rate + cum date (+5 points)
- Policy/Bill passing, especially if it is eyeball-catching (+5 points)
- Insider trading, especially if it is eyeball-catching (+5 points)
- Acquisition/Merging (+5 points)
- Launching of a new company business plan: new project, income source, partner, or contract (+5 points)
- Earnings Report (+5 points)

2. Secondary CTA (Up to 2 Points Each). Does the article mention any of the following?
- IDX performance against the US market (+2 points)
- Rupiah performance (+2 points)
- Net foreign buy and sell (+2 points)
- Recommended stocks (stock watchlist) (+2 points)
- Global commodities prices (+2 points)

Total Score:
- Base Score: up to 100 points based on the 10 main criteria.
- Bonus Score: additional points based on Primary and Secondary CTA criteria.

A high quality news article is one that is:
1. actionable
2. commercially valuable (request for proposal on a new coal site)
3. big movement of money (merger and acquisitions, large insider purchase etc)
4. potential big changes for market cap in the industry`
