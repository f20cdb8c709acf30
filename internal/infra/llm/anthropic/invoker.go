package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/llm"
)

const defaultModel = "claude-3-5-haiku-latest"

// Invoker summarizes chunks through the Anthropic Messages API.
type Invoker struct {
	client         anthropic.Client
	model          string
	prompt         string
	maxConcurrency int
	logger         *slog.Logger
}

// NewInvoker constructs an Anthropic backed invoker with retries disabled.
func NewInvoker(opts llm.Options, logger *slog.Logger) (*Invoker, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("anthropic api key cannot be empty")
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	return &Invoker{
		client:         anthropic.NewClient(reqOpts...),
		model:          model,
		prompt:         opts.Prompt,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger.With("component", "llm.anthropic"),
	}, nil
}

// SummarizeBatch implements summarizer.Invoker.
func (i *Invoker) SummarizeBatch(ctx context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	instructions := llm.Instructions(i.prompt, bounds)
	return llm.FanOut(ctx, texts, i.maxConcurrency, func(ctx context.Context, text string) (string, error) {
		msg, err := i.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(i.model),
			MaxTokens: int64(bounds.MaxLength),
			System:    []anthropic.TextBlockParam{{Text: instructions}},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
			},
		})
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		var b strings.Builder
		for _, block := range msg.Content {
			if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
				b.WriteString(tb.Text)
			}
		}
		if msg.StopReason == anthropic.StopReasonMaxTokens {
			i.logger.Warn("summary truncated at max tokens")
		}
		return b.String(), nil
	})
}

var _ summarizer.Invoker = (*Invoker)(nil)
