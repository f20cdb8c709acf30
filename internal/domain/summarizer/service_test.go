package summarizer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/article-summarizer/pkg/errors"
)

func TestSummarizeSplitsLongArticle(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newService(t, testConfig(), runeTokenizer{}, invoker)

	article := strings.Repeat("a", 1500)
	resp, err := svc.Summarize(context.Background(), summarizer.Request{Text: article})
	require.NoError(t, err)

	require.Len(t, invoker.lastTexts, 2)
	require.Len(t, invoker.lastTexts[0], 1000)
	require.Len(t, invoker.lastTexts[1], 500)
	require.Equal(t, summarizer.Bounds{MinLength: 30, MaxLength: 150}, invoker.lastBounds)
	require.Equal(t, "summary-0. summary-1.", resp.Summary)
	require.Equal(t, 2, resp.Usage.Chunks)
	require.Equal(t, 1500, resp.Usage.InputTokens)
	require.Equal(t, 1, resp.OriginalWordCount)
	require.Equal(t, 2, resp.SummaryWordCount)
}

func TestSummarizeExactWindowIsSingleChunk(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newService(t, testConfig(), runeTokenizer{}, invoker)

	article := strings.Repeat("b", 1000)
	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: article})
	require.NoError(t, err)
	require.Equal(t, []string{article}, invoker.lastTexts)
}

func TestSummarizeOneSummaryPerChunk(t *testing.T) {
	for _, n := range []int{1, 7, 999, 1000, 1001, 2500, 4000} {
		invoker := &stubInvoker{}
		svc := newService(t, testConfig(), runeTokenizer{}, invoker)

		resp, err := svc.Summarize(context.Background(), summarizer.Request{Text: strings.Repeat("x", n)})
		require.NoError(t, err)
		want := summarizer.ChunkCount(n, 1000)
		require.Len(t, invoker.lastTexts, want, "n=%d", n)
		require.Equal(t, want, resp.SummaryWordCount, "n=%d", n)
	}
}

func TestSummarizeRejectsEmptyText(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newService(t, testConfig(), runeTokenizer{}, invoker)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Summarize(context.Background(), summarizer.Request{Text: text})
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, summarizer.CodeEmptyInput))
	}
	require.Zero(t, invoker.calls)
}

func TestSummarizeTokenizationFailure(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newService(t, testConfig(), failingTokenizer{}, invoker)

	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "hello"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, summarizer.CodeTokenizationFailed))
	require.Zero(t, invoker.calls)
}

func TestSummarizeRejectsTextWithoutTokens(t *testing.T) {
	invoker := &stubInvoker{}
	svc := newService(t, testConfig(), emptyTokenizer{}, invoker)

	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "\u200b"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, summarizer.CodeEmptyInput))
	require.Zero(t, invoker.calls)
}

func TestSummarizeFailsWholeRequestOnChunkFailure(t *testing.T) {
	invoker := &stubInvoker{failAt: 1}
	svc := newService(t, testConfig(), runeTokenizer{}, invoker)

	resp, err := svc.Summarize(context.Background(), summarizer.Request{Text: strings.Repeat("c", 2500)})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, summarizer.CodeSummarizationUnavailable))
	require.Equal(t, summarizer.Result{}, resp)
	require.Len(t, invoker.lastTexts, 3)
}

func TestSummarizeRejectsMismatchedBatch(t *testing.T) {
	invoker := &stubInvoker{drop: true}
	svc := newService(t, testConfig(), runeTokenizer{}, invoker)

	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: strings.Repeat("d", 1200)})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, summarizer.CodeSummarizationUnavailable))
}

func TestSummarizeHonoursRequestTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	svc := newService(t, cfg, runeTokenizer{}, blockingInvoker{})

	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "slow"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, summarizer.CodeSummarizationUnavailable))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSummarizeSerializesInvocations(t *testing.T) {
	cfg := testConfig()
	cfg.SerializeInvocations = true
	invoker := &concurrencyInvoker{}
	svc := newService(t, cfg, runeTokenizer{}, invoker)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Summarize(context.Background(), summarizer.Request{Text: "parallel"})
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), invoker.peak.Load())
}

func TestNewServiceValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  summarizer.Config
	}{
		{name: "zero chunk length", cfg: summarizer.Config{MaxChunkLength: 0, MinLength: 30, MaxLength: 150}},
		{name: "min equals max", cfg: summarizer.Config{MaxChunkLength: 1000, MinLength: 150, MaxLength: 150}},
		{name: "negative min", cfg: summarizer.Config{MaxChunkLength: 1000, MinLength: -1, MaxLength: 150}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := summarizer.NewService(tt.cfg, runeTokenizer{}, &stubInvoker{}, newTestLogger())
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, summarizer.CodeInvalidConfig))
		})
	}
}

func testConfig() summarizer.Config {
	return summarizer.Config{
		MaxChunkLength: summarizer.DefaultMaxChunkLength,
		MinLength:      summarizer.DefaultMinLength,
		MaxLength:      summarizer.DefaultMaxLength,
	}
}

func newService(t *testing.T, cfg summarizer.Config, tok summarizer.Tokenizer, inv summarizer.Invoker) summarizer.Service {
	t.Helper()
	svc, err := summarizer.NewService(cfg, tok, inv, newTestLogger())
	require.NoError(t, err)
	return svc
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

// runeTokenizer maps every rune to its code point; negative ids are control
// tokens and are dropped on decode.
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) ([]int, error) {
	out := make([]int, 0, len(text))
	for _, r := range text {
		out = append(out, int(r))
	}
	return out, nil
}

func (runeTokenizer) Decode(tokens []int) string {
	var b strings.Builder
	for _, id := range tokens {
		if id < 0 {
			continue
		}
		b.WriteRune(rune(id))
	}
	return b.String()
}

type failingTokenizer struct{}

func (failingTokenizer) Encode(string) ([]int, error) { return nil, errors.New("vocabulary missing") }
func (failingTokenizer) Decode([]int) string          { return "" }

type emptyTokenizer struct{}

func (emptyTokenizer) Encode(string) ([]int, error) { return []int{}, nil }
func (emptyTokenizer) Decode([]int) string          { return "" }

type stubInvoker struct {
	failAt int
	drop   bool

	calls      int
	lastTexts  []string
	lastBounds summarizer.Bounds
}

func (s *stubInvoker) SummarizeBatch(_ context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	s.calls++
	s.lastTexts = texts
	s.lastBounds = bounds
	out := make([]string, 0, len(texts))
	for i := range texts {
		if s.failAt > 0 && i == s.failAt {
			return nil, errors.New("model unavailable")
		}
		out = append(out, fmt.Sprintf("summary-%d.", i))
	}
	if s.drop && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

type blockingInvoker struct{}

func (blockingInvoker) SummarizeBatch(ctx context.Context, _ []string, _ summarizer.Bounds) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type concurrencyInvoker struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *concurrencyInvoker) SummarizeBatch(_ context.Context, texts []string, _ summarizer.Bounds) ([]string, error) {
	now := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		peak := c.peak.Load()
		if now <= peak || c.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	out := make([]string, len(texts))
	for i := range out {
		out[i] = "ok."
	}
	return out, nil
}
