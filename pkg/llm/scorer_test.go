package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{-10, 0},
		{0, 0},
		{100, 100},
		{150, 150},
		{200, 150},
	}

	for _, tt := range tests {
		if got := clampScore(tt.raw); got != tt.want {
			t.Errorf("clampScore(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"full url", "https://www.idnfinancials.com/news/50366/some-article", "www.idnfinancials.com"},
		{"no scheme", "idnfinancials.com/news", ""},
		{"unparseable", "http://bad url with spaces", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractHost(tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScore_ClampsBackendResult(t *testing.T) {
	backend := &fakeBackend{name: "gen", response: `{"score": 200}`}
	s := NewScorer(newTestInvoker(backend))

	got, err := s.Score(context.Background(), "body", "2025-03-07", "https://kontan.co.id/a")
	if err != nil {
		t.Fatal(err)
	}
	if got != 150 {
		t.Errorf("got %d, want 150", got)
	}
}

func TestScore_PromptCarriesContext(t *testing.T) {
	var captured string
	backend := &promptCapturingBackend{response: `{"score": 80}`, captured: &captured}

	s := NewScorer(newTestInvoker(backend))
	s.now = func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) }

	if _, err := s.Score(context.Background(), "the article body", "2025-03-06", "https://www.kontan.co.id/x"); err != nil {
		t.Fatal(err)
	}

	for _, fragment := range []string{
		"www.kontan.co.id",
		"2025-03-06",
		"2025-03-07T10:00:00Z",
		"the article body",
		"Timeliness",
	} {
		if !strings.Contains(captured, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestScore_ChainExhausted(t *testing.T) {
	backend := &fakeBackend{name: "dead", err: errors.New("down")}
	s := NewScorer(newTestInvoker(backend))

	_, err := s.Score(context.Background(), "body", "2025-03-07", "https://kontan.co.id/a")
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("got %v, want ErrExhausted", err)
	}
}

type promptCapturingBackend struct {
	response string
	captured *string
}

func (p *promptCapturingBackend) Name() string {
	return "capture"
}

func (p *promptCapturingBackend) Complete(ctx context.Context, prompt string) (string, error) {
	*p.captured = prompt
	return p.response, nil
}
