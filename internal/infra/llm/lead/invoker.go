// Package lead implements an offline extractive summarizer. It keeps the
// leading sentences of each chunk, which is a strong baseline for news copy
// and lets the service run without model credentials.
package lead

import (
	"context"
	"strings"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

// Invoker selects leading sentences until the summary holds at least
// MinLength words, never exceeding MaxLength words. Words stand in for
// model tokens.
type Invoker struct{}

// NewInvoker constructs the extractive invoker.
func NewInvoker() *Invoker {
	return &Invoker{}
}

// SummarizeBatch implements summarizer.Invoker.
func (i *Invoker) SummarizeBatch(ctx context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	out := make([]string, len(texts))
	for idx, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[idx] = Summarize(text, bounds)
	}
	return out, nil
}

// Summarize extracts the lead of a single text.
func Summarize(text string, bounds summarizer.Bounds) string {
	var picked []string
	for _, sentence := range sentences(text) {
		if bounds.MaxLength > 0 && len(picked)+len(sentence) > bounds.MaxLength {
			if len(picked) == 0 || len(picked) < bounds.MinLength {
				picked = append(picked, sentence[:bounds.MaxLength-len(picked)]...)
			}
			break
		}
		picked = append(picked, sentence...)
		if len(picked) >= bounds.MinLength {
			break
		}
	}
	return strings.Join(picked, " ")
}

// sentences groups whitespace separated words into sentences ending with
// '.', '!' or '?'.
func sentences(text string) [][]string {
	var (
		out     [][]string
		current []string
	)
	for _, word := range strings.Fields(text) {
		current = append(current, word)
		if endsSentence(word) {
			out = append(out, current)
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, `"')]}”’`)
	return word != "" && strings.ContainsRune(".!?", rune(word[len(word)-1]))
}

var _ summarizer.Invoker = (*Invoker)(nil)
