package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/article-summarizer/internal/domain/history"
	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/config"
	"github.com/yanqian/article-summarizer/internal/infra/historystore"
	"github.com/yanqian/article-summarizer/internal/infra/llm"
	"github.com/yanqian/article-summarizer/internal/infra/llm/anthropic"
	"github.com/yanqian/article-summarizer/internal/infra/llm/gemini"
	"github.com/yanqian/article-summarizer/internal/infra/llm/lead"
	"github.com/yanqian/article-summarizer/internal/infra/llm/ollama"
	"github.com/yanqian/article-summarizer/internal/infra/llm/openai"
	"github.com/yanqian/article-summarizer/internal/infra/summarycache"
	"github.com/yanqian/article-summarizer/internal/infra/tokenizer"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		MaxChunkLength:       cfg.Summary.MaxChunkLength,
		MinLength:            cfg.Summary.MinLength,
		MaxLength:            cfg.Summary.MaxLength,
		RequestTimeout:       cfg.Summary.RequestTimeout,
		SerializeInvocations: cfg.Summary.SerializeInvocations,
	}
}

func provideTokenizer(cfg *config.Config) (summarizer.Tokenizer, error) {
	return tokenizer.NewTiktoken(cfg.Summary.Encoding)
}

func provideLLMOptions(cfg *config.Config) llm.Options {
	return llm.Options{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Prompt:         cfg.LLM.Prompt,
		MaxConcurrency: cfg.LLM.MaxConcurrency,
		Timeout:        cfg.LLM.Timeout,
	}
}

// provideInvoker selects the configured backend and, when enabled, puts the
// chunk cache in front of it.
func provideInvoker(cfg *config.Config, opts llm.Options, cache summarizer.Cache, logger *slog.Logger) (summarizer.Invoker, func(), error) {
	var (
		invoker summarizer.Invoker
		cleanup = func() {}
		err     error
	)
	switch cfg.LLM.Provider {
	case llm.ProviderLead:
		invoker = lead.NewInvoker()
	case llm.ProviderOpenAI:
		invoker, err = openai.NewInvoker(opts, logger)
	case llm.ProviderAnthropic:
		invoker, err = anthropic.NewInvoker(opts, logger)
	case llm.ProviderOllama:
		invoker, err = ollama.NewInvoker(opts, logger)
	case llm.ProviderGemini:
		var client *gemini.Invoker
		client, err = gemini.NewInvoker(context.Background(), opts, logger)
		if err == nil {
			invoker = client
			cleanup = func() {
				if cerr := client.Close(); cerr != nil {
					logger.Warn("close gemini client failed", "error", cerr)
				}
			}
		}
	default:
		err = fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, nil, err
	}
	logger.Info("summarization backend selected", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	if !cfg.Cache.Enabled {
		return invoker, cleanup, nil
	}
	namespace := cfg.LLM.Provider
	if cfg.LLM.Model != "" {
		namespace += "/" + cfg.LLM.Model
	}
	return summarizer.NewCachedInvoker(invoker, cache, namespace, cfg.Cache.TTL, logger), cleanup, nil
}

func provideSummaryCache(cfg *config.Config, logger *slog.Logger) (summarizer.Cache, func()) {
	fallback := func() (summarizer.Cache, func()) {
		return summarycache.NewMemoryStore(cfg.Cache.MaxEntries), func() {}
	}
	if !cfg.Cache.Enabled || !cfg.Cache.Valkey.Enabled {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("summary valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
	return summarycache.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	addr := strings.TrimSpace(cfg.Cache.Valkey.Addr)
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideHistoryStore(cfg *config.Config) history.Store {
	return historystore.NewMemoryStore(cfg.History.Capacity)
}
