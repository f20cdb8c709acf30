package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/llm"
)

const defaultModel = "gpt-4o-mini"

// Invoker summarizes chunks through the OpenAI Responses API, one request
// per chunk.
type Invoker struct {
	client         openai.Client
	model          string
	prompt         string
	maxConcurrency int
	logger         *slog.Logger
}

// NewInvoker constructs an OpenAI backed invoker. The SDK's automatic
// retries are disabled; a failed chunk fails the request.
func NewInvoker(opts llm.Options, logger *slog.Logger) (*Invoker, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key cannot be empty")
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
		client:         openai.NewClient(reqOpts...),
		model:          model,
		prompt:         opts.Prompt,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger.With("component", "llm.openai"),
	}, nil
}

// SummarizeBatch implements summarizer.Invoker.
func (i *Invoker) SummarizeBatch(ctx context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	instructions := llm.Instructions(i.prompt, bounds)
	return llm.FanOut(ctx, texts, i.maxConcurrency, func(ctx context.Context, text string) (string, error) {
		resp, err := i.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           i.model,
			MaxOutputTokens: openai.Int(int64(bounds.MaxLength)),
			Instructions:    openai.String(instructions),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		})
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}
		if resp.Status == "incomplete" {
			i.logger.Warn("summary truncated at max output tokens", "reason", resp.IncompleteDetails.Reason)
		}
		return resp.OutputText(), nil
	})
}

var _ summarizer.Invoker = (*Invoker)(nil)
