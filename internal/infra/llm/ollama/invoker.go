package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/llm"
)

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "llama3.2"
)

// Invoker summarizes chunks with a model served by a local Ollama daemon.
type Invoker struct {
	client         *ollama.Client
	model          string
	prompt         string
	maxConcurrency int
	logger         *slog.Logger
}

// NewInvoker builds a client for the Ollama host in opts.BaseURL.
func NewInvoker(opts llm.Options, logger *slog.Logger) (*Invoker, error) {
	host := strings.TrimSpace(opts.BaseURL)
	if host == "" {
		host = defaultHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	return &Invoker{
		client:         ollama.NewClient(u, &http.Client{Timeout: timeout}),
		model:          model,
		prompt:         opts.Prompt,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger.With("component", "llm.ollama"),
	}, nil
}

// SummarizeBatch implements summarizer.Invoker.
func (i *Invoker) SummarizeBatch(ctx context.Context, texts []string, bounds summarizer.Bounds) ([]string, error) {
	instructions := llm.Instructions(i.prompt, bounds)
	return llm.FanOut(ctx, texts, i.maxConcurrency, func(ctx context.Context, text string) (string, error) {
		stream := false
		req := &ollama.GenerateRequest{
			Model:  i.model,
			System: instructions,
			Prompt: text,
			Stream: &stream,
			Options: map[string]any{
				"num_predict": bounds.MaxLength,
				"temperature": 0.0,
			},
		}

		var (
			b    strings.Builder
			last ollama.GenerateResponse
		)
		if err := i.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
			b.WriteString(gr.Response)
			last = gr
			return nil
		}); err != nil {
			return "", fmt.Errorf("ollama generate: %w", err)
		}
		if last.DoneReason == "length" {
			i.logger.Warn("summary truncated at num_predict")
		}
		return b.String(), nil
	})
}

var _ summarizer.Invoker = (*Invoker)(nil)
