package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/llm"
)

const defaultModel = "gemini-1.5-flash"

// Invoker summarizes chunks with Google Gemini.
type Invoker struct {
	client         *genai.Client
	model          string
	prompt         string
	maxConcurrency int
	logger         *slog.Logger
}

// NewInvoker dials the Gemini API. Close releases the client.
func NewInvoker(ctx context.Context, opts llm.Options, logger *slog.Logger) (*Invoker, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.BaseURL))
	}
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	return &Invoker{
		client:         client,
		model:          model,
		prompt:         opts.Prompt,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger.With("component", "llm.gemini"),
	}, nil
}

// SummarizeBatch implements summarizer.Invoker.
func (i *Invoker) SummarizeBatch(ctx context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	instructions := llm.Instructions(i.prompt, bounds)
	return llm.FanOut(ctx, texts, i.maxConcurrency, func(ctx context.Context, text string) (string, error) {
		model := i.client.GenerativeModel(i.model)
		model.SetMaxOutputTokens(int32(bounds.MaxLength))
		model.SetTemperature(0)
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instructions)}}

		resp, err := model.GenerateContent(ctx, genai.Text(text))
		if err != nil {
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", errors.New("gemini: empty response")
		}

		var b strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		return b.String(), nil
	})
}

// Close releases the underlying client.
func (i *Invoker) Close() error {
	return i.client.Close()
}

var _ summarizer.Invoker = (*Invoker)(nil)
