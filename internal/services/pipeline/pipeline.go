package pipeline

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/analysis"
	"github.com/ternarybob/scrutor/internal/services/search"
)

// Config tunes a research pipeline instance
type Config struct {
	MaxAge           time.Duration // Freshness threshold for cached results
	ResultsPerQuery  int           // Search results kept per generated query
	MinContentLength int           // Minimum extracted characters to keep a source
}

// Pipeline implements the ResearchService interface: cache check, name
// normalization, entity enrichment, query generation, search, fetch,
// staged analysis, and persistence. It always returns a tagged outcome
// and never surfaces a raw error to the caller.
type Pipeline struct {
	config      Config
	politicians interfaces.PoliticianStorage
	results     interfaces.ResearchStorage
	normalizer  interfaces.NameNormalizer
	searcher    interfaces.WebSearcher
	fetcher     interfaces.ContentFetcher
	analyzer    *analysis.Analyzer
	enricher    interfaces.EntityEnricher
	now         func() time.Time
	logger      arbor.ILogger
}

// NewPipeline creates a new research pipeline
func NewPipeline(
	config Config,
	politicians interfaces.PoliticianStorage,
	results interfaces.ResearchStorage,
	normalizer interfaces.NameNormalizer,
	searcher interfaces.WebSearcher,
	fetcher interfaces.ContentFetcher,
	analyzer *analysis.Analyzer,
	enricher interfaces.EntityEnricher,
	logger arbor.ILogger,
) interfaces.ResearchService {
	if config.ResultsPerQuery <= 0 {
		config.ResultsPerQuery = 2
	}
	if config.MinContentLength <= 0 {
		config.MinContentLength = 500
	}
	return &Pipeline{
		config:      config,
		politicians: politicians,
		results:     results,
		normalizer:  normalizer,
		searcher:    searcher,
		fetcher:     fetcher,
		analyzer:    analyzer,
		enricher:    enricher,
		now:         time.Now,
		logger:      logger,
	}
}

// Research runs the full pipeline for a politician. A fresh cached result
// short-circuits everything unless ForceRefresh is set.
func (p *Pipeline) Research(ctx context.Context, name, position string, opts models.ResearchOptions) *models.ResearchOutcome {
	startTime := p.now()
	p.logger.Info().
		Str("name", name).
		Str("position", position).
		Bool("force_refresh", opts.ForceRefresh).
		Msg("Starting research")

	// Cache check against the raw input name first; normalization is
	// expensive and a repeat request usually arrives with the same spelling
	if !opts.ForceRefresh {
		if outcome := p.cachedOutcome(ctx, name, position); outcome != nil {
			return outcome
		}
	}

	canonical, refURL := p.normalizer.Normalize(ctx, name, position)
	if canonical != name {
		p.logger.Info().Str("input", name).Str("canonical", canonical).Msg("Using canonical name")
		// The canonical name may already have a fresh result
		if !opts.ForceRefresh {
			if outcome := p.cachedOutcome(ctx, canonical, position); outcome != nil {
				return outcome
			}
		}
	}

	politician, created, err := p.politicians.GetOrCreate(ctx, canonical)
	if err != nil {
		p.logger.Error().Err(err).Str("name", canonical).Msg("Failed to load politician")
		return models.FailureOutcome(canonical, position, "storage error: "+err.Error())
	}

	// New or incomplete entities get their profile filled before the main
	// gathering so the dossier can reference party and bio regardless of
	// how the run ends
	if !opts.SkipEnrich && (created || politician.NeedsEnrichment()) {
		if err := p.enricher.Enrich(ctx, politician, position); err != nil {
			p.logger.Warn().Err(err).Str("name", canonical).Msg("Enrichment failed")
		}
	}

	sources := p.gather(ctx, canonical, position, refURL)
	if len(sources) == 0 {
		p.logger.Warn().Str("name", canonical).Msg("No usable content gathered")
		return models.FailureOutcome(canonical, position, "no usable content found for "+canonical)
	}

	docs := make([]string, len(sources))
	for i, source := range sources {
		docs[i] = source.Content
	}

	analyzed, err := p.analyzer.Analyze(ctx, canonical, position, docs)
	if err != nil {
		p.logger.Error().Err(err).Str("name", canonical).Msg("Analysis failed")
		return models.PartialOutcome(canonical, position, "analysis failed: "+err.Error(), sources)
	}

	result := &models.ResearchResult{
		PoliticianID:    politician.ID,
		Position:        position,
		Background:      analyzed.Background,
		Accomplishments: analyzed.Accomplishments,
		Criticisms:      analyzed.Criticisms,
		Summary:         analyzed.Summary,
		Sources:         sources,
	}
	result, err = p.results.Create(ctx, result)
	if err != nil {
		p.logger.Error().Err(err).Str("name", canonical).Msg("Failed to persist research result")
		return models.PartialOutcome(canonical, position, "persistence failed: "+err.Error(), sources)
	}

	p.logger.Info().
		Str("name", canonical).
		Str("result_id", result.ID).
		Int("sources", len(sources)).
		Dur("duration", p.now().Sub(startTime)).
		Msg("Research completed")
	return models.SuccessOutcome(canonical, position, result, false)
}

// cachedOutcome returns a success outcome when a fresh result exists for
// the name and position, nil otherwise.
func (p *Pipeline) cachedOutcome(ctx context.Context, name, position string) *models.ResearchOutcome {
	politician, err := p.politicians.FindByName(ctx, name)
	if err != nil || politician == nil {
		return nil
	}

	result, err := p.results.FindLatest(ctx, politician.ID, position)
	if err != nil || result == nil {
		return nil
	}
	if !result.IsFresh(p.now(), p.config.MaxAge) {
		p.logger.Debug().
			Str("name", name).
			Dur("age", result.Age(p.now())).
			Msg("Cached result is stale, regenerating")
		return nil
	}

	p.logger.Info().
		Str("name", name).
		Str("result_id", result.ID).
		Dur("age", result.Age(p.now())).
		Msg("Returning fresh cached result")
	return models.SuccessOutcome(politician.Name, position, result, true)
}

// gather runs the generated queries through search and content fetch,
// deduplicating URLs and keeping only sources with enough extracted text.
// The normalization reference page, when known, is fetched first.
func (p *Pipeline) gather(ctx context.Context, name, position, refURL string) []models.Source {
	queries := search.GenerateQueries(name, position)
	seen := make(map[string]bool)
	var sources []models.Source

	if refURL != "" && search.IsWebsiteURL(refURL) {
		seen[refURL] = true
		if content := p.fetcher.Fetch(ctx, refURL); len(content) >= p.config.MinContentLength {
			sources = append(sources, models.Source{
				URL:     refURL,
				Title:   name,
				Query:   "reference",
				Content: content,
			})
		}
	}

	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}

		for _, result := range p.searcher.Search(ctx, query, p.config.ResultsPerQuery) {
			if seen[result.URL] {
				continue
			}
			seen[result.URL] = true

			content := p.fetcher.Fetch(ctx, result.URL)
			if len(content) < p.config.MinContentLength {
				p.logger.Debug().
					Str("url", result.URL).
					Int("length", len(content)).
					Msg("Skipping thin source")
				continue
			}

			sources = append(sources, models.Source{
				URL:     result.URL,
				Title:   result.Title,
				Query:   query,
				Content: content,
			})
		}
	}

	p.logger.Info().
		Str("name", name).
		Int("queries", len(queries)).
		Int("sources", len(sources)).
		Msg("Content gathering completed")
	return sources
}
