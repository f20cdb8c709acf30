// Package llm holds the pieces shared by the summarization backends.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

// Provider names accepted by configuration.
const (
	ProviderLead      = "lead"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

const defaultMaxConcurrency = 4

// DefaultPrompt instructs chat style models to behave like an abstractive
// news summarizer.
const DefaultPrompt = "You summarize news articles. Rewrite the provided excerpt as a short abstractive summary in plain prose, in the same language as the input. Do not add facts that are not in the text and do not use lists or headings."

// ErrEmptySummary is returned when a backend answers with no text.
var ErrEmptySummary = errors.New("model returned an empty summary")

// Options configures a remote backend.
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	Prompt         string
	MaxConcurrency int
	Timeout        time.Duration
}

// Instructions renders the system prompt together with the length bounds.
func Instructions(prompt string, bounds summarizer.Bounds) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return fmt.Sprintf("%s\n\nConstraints:\n- The summary must be at least %d and at most %d tokens long.", prompt, bounds.MinLength, bounds.MaxLength)
}

// FanOut calls fn once per text with at most maxConcurrency calls in flight
// and returns the results in input order. The first failure cancels the
// remaining calls and no partial results are returned.
func FanOut(ctx context.Context, texts []string, maxConcurrency int, fn func(ctx context.Context, text string) (string, error)) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	out := make([]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := fn(gctx, text)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			summary = strings.TrimSpace(summary)
			if summary == "" {
				return fmt.Errorf("chunk %d: %w", i, ErrEmptySummary)
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
