package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/yanqian/article-summarizer/pkg/errors"
	"github.com/yanqian/article-summarizer/pkg/metrics"
)

// Service exposes summarization capabilities.
type Service interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}

// Tokenizer converts text to token ids and back.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(tokens []int) string
}

// Invoker summarizes a batch of chunk texts. Output i must summarize input i.
type Invoker interface {
	SummarizeBatch(ctx context.Context, texts []string, bounds Bounds) ([]string, error)
}

type service struct {
	cfg       Config
	tokenizer Tokenizer
	invoker   Invoker
	logger    *slog.Logger

	invokeMu sync.Mutex
}

// NewService is a wire provider for the summarizer domain.
func NewService(cfg Config, tokenizer Tokenizer, invoker Invoker, logger *slog.Logger) (Service, error) {
	if cfg.MaxChunkLength <= 0 {
		return nil, apperrors.Wrap(CodeInvalidConfig, fmt.Sprintf("max chunk length must be positive, got %d", cfg.MaxChunkLength), nil)
	}
	if cfg.MinLength < 0 || cfg.MinLength >= cfg.MaxLength {
		return nil, apperrors.Wrap(CodeInvalidConfig, fmt.Sprintf("generation bounds must satisfy 0 <= min < max, got min=%d max=%d", cfg.MinLength, cfg.MaxLength), nil)
	}
	return &service{
		cfg:       cfg,
		tokenizer: tokenizer,
		invoker:   invoker,
		logger:    logger.With("component", "summarizer.service"),
	}, nil
}

func (s *service) Summarize(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, apperrors.Wrap(CodeEmptyInput, "text cannot be empty", nil)
	}
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	tokens, err := s.tokenizer.Encode(req.Text)
	if err != nil {
		s.logger.Error("encode article failed", "code", CodeTokenizationFailed, "error", err)
		return Result{}, apperrors.Wrap(CodeTokenizationFailed, "tokenize article", err)
	}

	windows, err := Split(tokens, s.cfg.MaxChunkLength)
	if err != nil {
		return Result{}, apperrors.Wrap(CodeInvalidConfig, "split article", err)
	}
	if len(windows) == 0 {
		return Result{}, apperrors.Wrap(CodeEmptyInput, "text produced no tokens", nil)
	}

	texts := make([]string, len(windows))
	for i, window := range windows {
		texts[i] = s.tokenizer.Decode(window)
	}
	s.logger.Debug("article split", "tokens", len(tokens), "chunks", len(texts))

	summaries, err := s.invoke(ctx, texts)
	if err != nil {
		s.logger.Error("summarize chunks failed", "code", CodeSummarizationUnavailable, "chunks", len(texts), "error", err)
		return Result{}, apperrors.Wrap(CodeSummarizationUnavailable, "summarization unavailable", err)
	}
	if len(summaries) != len(texts) {
		s.logger.Error("invoker returned mismatched batch", "code", CodeSummarizationUnavailable, "chunks", len(texts), "summaries", len(summaries))
		return Result{}, apperrors.Wrap(CodeSummarizationUnavailable, fmt.Sprintf("expected %d chunk summaries, got %d", len(texts), len(summaries)), nil)
	}

	result := Aggregate(summaries, req.Text)
	result.Usage = &metrics.Usage{InputTokens: len(tokens), Chunks: len(texts)}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.Info("article summarized",
		"chunks", len(texts),
		"original_wc", result.OriginalWordCount,
		"summary_wc", result.SummaryWordCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *service) invoke(ctx context.Context, texts []string) ([]string, error) {
	if s.cfg.SerializeInvocations {
		s.invokeMu.Lock()
		defer s.invokeMu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.invoker.SummarizeBatch(ctx, texts, s.cfg.Bounds())
}
