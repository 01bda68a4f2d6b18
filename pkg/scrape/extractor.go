package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Mobile Safari/537.36"

// Extractor turns an article URL into plain text. Extraction is layered:
// a proxied structured pass first, then a bare div.content scrape, then a
// final unproxied structured pass. It never returns an error; callers get
// an empty string when every layer fails.
type Extractor struct {
	client      *http.Client
	plainClient *http.Client
}

// NewExtractor builds an extractor. proxyURL may be empty, in which case
// the proxied and unproxied layers behave identically.
func NewExtractor(proxyURL string) *Extractor {
	plain := &http.Client{Timeout: 30 * time.Second}

	client := plain
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			client = &http.Client{
				Timeout:   30 * time.Second,
				Transport: &http.Transport{Proxy: http.ProxyURL(parsed)},
			}
		} else {
			slog.Warn("invalid proxy url, extracting without proxy", "error", err)
		}
	}

	return &Extractor{client: client, plainClient: plain}
}

// Extract fetches the page and returns its article text, or "" if no
// layer could produce any.
func (e *Extractor) Extract(ctx context.Context, pageURL string) string {
	doc, err := e.fetchDocument(ctx, e.client, pageURL)
	if err == nil {
		if text := articleText(doc); text != "" {
			return text
		}

		slog.Warn("structured extraction returned empty text, trying content scrape", "url", pageURL)
		if text := contentDivText(doc); text != "" {
			return text
		}
	} else {
		slog.Warn("proxied fetch failed, retrying without proxy", "url", pageURL, "error", err)
	}

	doc, err = e.fetchDocument(ctx, e.plainClient, pageURL)
	if err != nil {
		slog.Error("article extraction failed", "url", pageURL, "error", err)
		return ""
	}

	if text := articleText(doc); text != "" {
		return text
	}
	return contentDivText(doc)
}

func (e *Extractor) fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.Status}
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

type statusError struct {
	status string
}

func (e *statusError) Error() string {
	return "unexpected status " + e.status
}

// articleText gathers paragraph text from the most article-like container.
func articleText(doc *goquery.Document) string {
	var paragraphs []string

	container := doc.Find("article")
	if container.Length() == 0 {
		container = doc.Find("main")
	}
	if container.Length() == 0 {
		container = doc.Selection
	}

	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, " ")
}

func contentDivText(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("div.content").Text())
}
