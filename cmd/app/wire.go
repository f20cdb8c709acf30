//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/article-summarizer/internal/bootstrap"
	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
	"github.com/yanqian/article-summarizer/internal/infra/config"
	httpiface "github.com/yanqian/article-summarizer/internal/interface/http"
	"github.com/yanqian/article-summarizer/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryConfig,
		provideTokenizer,
		provideLLMOptions,
		provideSummaryCache,
		provideInvoker,
		provideHistoryStore,
		summarizer.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
