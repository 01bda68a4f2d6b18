package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// ErrExhausted is returned when every backend in the chain failed or was
// skipped for a request.
var ErrExhausted = errors.New("all model backends failed")

// DefaultPace is the delay imposed after every backend attempt. The
// chain shares per-key rate limits, so requests are smoothed rather
// than fired back to back.
const DefaultPace = 8 * time.Second

// pacer is the single place the inter-call delay lives; engines never
// sleep on their own.
type pacer struct {
	delay time.Duration
	sleep func(context.Context, time.Duration)
}

func newPacer(delay time.Duration) pacer {
	return pacer{delay: delay, sleep: sleepContext}
}

func (p pacer) Wait(ctx context.Context) {
	if p.delay <= 0 {
		return
	}
	p.sleep(ctx, p.delay)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Invoker runs a rendered prompt against an ordered backend chain,
// advancing past any backend that fails, rate-limits, or returns output
// that does not deserialize. The order is a fixed priority list; no
// backend is retried within its slot.
type Invoker struct {
	backends []Backend
	pace     pacer
}

func NewInvoker(backends ...Backend) *Invoker {
	return &Invoker{backends: backends, pace: newPacer(DefaultPace)}
}

// Invoke tries each backend in turn until one produces a response that
// unmarshals into out. It returns the name of the backend that
// succeeded, or ErrExhausted once the chain runs out. No partial output
// from two backends is ever mixed.
func (inv *Invoker) Invoke(ctx context.Context, prompt string, out any) (string, error) {
	for _, backend := range inv.backends {
		text, err := backend.Complete(ctx, prompt)

		// Pacing applies to every attempt that reached the backend,
		// success or not.
		inv.pace.Wait(ctx)

		if err != nil {
			var rl *RateLimitError
			switch {
			case errors.As(err, &rl) && rl.Daily:
				slog.Warn("backend hit its daily token limit, moving to next backend", "backend", backend.Name())
			case errors.As(err, &rl):
				slog.Warn("backend rate limited, moving to next backend", "backend", backend.Name(), "error", err)
			default:
				slog.Error("backend call failed", "backend", backend.Name(), "error", err)
			}
			continue
		}

		cleaned := cleanJSONResponse(text)
		if cleaned == "" {
			slog.Warn("backend returned no parseable output", "backend", backend.Name())
			continue
		}

		if err := json.Unmarshal([]byte(cleaned), out); err != nil {
			slog.Error("backend returned malformed JSON", "backend", backend.Name(), "error", err)
			continue
		}

		return backend.Name(), nil
	}

	slog.Error("every backend in the chain failed for this request")
	return "", ErrExhausted
}
