package llm

import (
	"context"
	"errors"
	"testing"
)

type fakeExtractor struct {
	text  string
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) string {
	f.calls++
	return f.text
}

func TestSummarize_EmptyExtractionSkipsBackends(t *testing.T) {
	backend := &fakeBackend{name: "gen", response: `{"title":"t","body":"b"}`}
	s := NewSummarizer(newTestInvoker(backend), &fakeExtractor{text: ""})

	title, body, err := s.Summarize(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if title != "" || body != "" {
		t.Errorf("got (%q, %q), want empty sentinel pair", title, body)
	}
	if backend.calls != 0 {
		t.Errorf("backend was called %d times for an empty article", backend.calls)
	}
}

func TestSummarize_Success(t *testing.T) {
	backend := &fakeBackend{
		name:     "gen",
		response: `{"title":"Bank Central Asia (BBCA) lifts dividend","body":"The bank raised payouts."}`,
	}
	s := NewSummarizer(newTestInvoker(backend), &fakeExtractor{text: "Some article text."})

	title, body, err := s.Summarize(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if title == "" || body == "" {
		t.Errorf("got (%q, %q)", title, body)
	}
}

func TestSummarize_IncompleteResponseAdvances(t *testing.T) {
	missingBody := &fakeBackend{name: "first", response: `{"title":"only a title","body":""}`}
	complete := &fakeBackend{name: "second", response: `{"title":"t","body":"b"}`}

	s := NewSummarizer(newTestInvoker(missingBody, complete), &fakeExtractor{text: "text"})

	title, body, err := s.Summarize(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if title != "t" || body != "b" {
		t.Errorf("got (%q, %q)", title, body)
	}
	if missingBody.calls != 1 || complete.calls != 1 {
		t.Errorf("attempts: first=%d second=%d", missingBody.calls, complete.calls)
	}
}

func TestSummarize_RateLimitPropagates(t *testing.T) {
	limited := &fakeBackend{name: "limited", err: &RateLimitError{Backend: "limited", Daily: true}}
	fallback := &fakeBackend{name: "fallback", response: `{"title":"t","body":"b"}`}

	s := NewSummarizer(newTestInvoker(limited, fallback), &fakeExtractor{text: "text"})

	_, _, err := s.Summarize(context.Background(), "https://example.com/a")

	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("got %v, want RateLimitError to propagate", err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback backend should not run after a rate limit, got %d calls", fallback.calls)
	}
}

func TestSummarize_AllBackendsFail(t *testing.T) {
	s := NewSummarizer(
		newTestInvoker(
			&fakeBackend{name: "a", err: errors.New("down")},
			&fakeBackend{name: "b", response: `not json`},
		),
		&fakeExtractor{text: "text"},
	)

	title, body, err := s.Summarize(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if title != "" || body != "" {
		t.Errorf("got (%q, %q), want empty sentinel pair", title, body)
	}
}
