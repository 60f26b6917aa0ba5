package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/services/analysis"
	"github.com/ternarybob/scrutor/internal/services/chat"
	"github.com/ternarybob/scrutor/internal/services/enrich"
	"github.com/ternarybob/scrutor/internal/services/export"
	"github.com/ternarybob/scrutor/internal/services/fetcher"
	"github.com/ternarybob/scrutor/internal/services/images"
	"github.com/ternarybob/scrutor/internal/services/llm"
	"github.com/ternarybob/scrutor/internal/services/names"
	"github.com/ternarybob/scrutor/internal/services/pipeline"
	"github.com/ternarybob/scrutor/internal/services/prompts"
	"github.com/ternarybob/scrutor/internal/services/search"
	"github.com/ternarybob/scrutor/internal/services/wiki"
	"github.com/ternarybob/scrutor/internal/storage/badger"
)

// App wires configuration, storage, and services together
type App struct {
	Config   *common.Config
	Logger   arbor.ILogger
	Storage  interfaces.StorageManager
	LLM      interfaces.LLMService
	Research interfaces.ResearchService
	Chat     *chat.Service
	Purger   *chat.Purger
	Exporter *export.Exporter

	renderer *fetcher.Renderer
}

// New initializes the application. Service construction order matters:
// storage and the LLM provider first since everything else depends on
// them; either failing aborts startup.
func New(config *common.Config, promptOverridesPath string, logger arbor.ILogger) (*App, error) {
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	llmService, err := llm.NewLLMService(config, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
	}

	promptStore := prompts.NewStore()
	if promptOverridesPath != "" {
		if err := promptStore.LoadOverrides(promptOverridesPath); err != nil {
			storageManager.Close()
			return nil, err
		}
		logger.Info().Str("path", promptOverridesPath).Msg("Loaded prompt overrides")
	}

	wikiClient := wiki.NewClient(logger)

	provider := search.NewDuckDuckGoProvider(config.Crawler.UserAgent, config.Crawler.RequestTimeout, logger)
	searcher := search.NewSearcher(provider, config.Crawler.UserAgent,
		config.Crawler.RequestTimeout, config.Crawler.RequestDelay, logger)

	var renderer *fetcher.Renderer
	if config.Crawler.EnableJavaScript {
		renderer = fetcher.NewRenderer(fetcher.RendererConfig{
			MaxInstances:   config.Crawler.MaxBrowsers,
			UserAgent:      config.Crawler.UserAgent,
			JSWaitTime:     config.Crawler.JavaScriptWaitTime,
			RequestTimeout: config.Crawler.RequestTimeout,
		}, logger)
	}
	contentFetcher := fetcher.NewFetcher(config.Crawler.UserAgent, config.Crawler.RequestTimeout, renderer, logger)

	imageResolver := images.NewResolver(wikiClient, config.Crawler.UserAgent, config.Crawler.RequestTimeout, logger)
	normalizer := names.NewNormalizer(llmService, wikiClient, searcher, logger)
	analyzer := analysis.NewAnalyzer(llmService, promptStore, logger)
	enricher := enrich.NewEnricher(storageManager.PoliticianStorage(), imageResolver,
		searcher, contentFetcher, llmService, promptStore, wikiClient, logger)

	researchService := pipeline.NewPipeline(pipeline.Config{
		MaxAge:           time.Duration(config.Research.MaxAgeDays) * 24 * time.Hour,
		ResultsPerQuery:  config.Research.ResultsPerQuery,
		MinContentLength: config.Research.MinContentLength,
	}, storageManager.PoliticianStorage(), storageManager.ResearchStorage(),
		normalizer, searcher, contentFetcher, analyzer, enricher, logger)

	chatService := chat.NewService(storageManager.ChatStorage(), storageManager.ResearchStorage(),
		researchService, searcher, contentFetcher, llmService, promptStore, logger)
	purger := chat.NewPurger(storageManager.ChatStorage(), config.Chat.TempChatTTL,
		config.Chat.CleanupSchedule, logger)

	logger.Info().Msg("Application initialized")

	return &App{
		Config:   config,
		Logger:   logger,
		Storage:  storageManager,
		LLM:      llmService,
		Research: researchService,
		Chat:     chatService,
		Purger:   purger,
		Exporter: export.NewExporter(logger),
		renderer: renderer,
	}, nil
}

// Close releases all resources in reverse construction order
func (a *App) Close() {
	a.Purger.Stop()
	if a.renderer != nil {
		if err := a.renderer.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close browser pool")
		}
	}
	if err := a.LLM.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
	}
	if err := a.Storage.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close storage")
	}
	a.Logger.Info().Msg("Application shut down")
}
