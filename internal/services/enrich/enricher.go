package enrich

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/analysis"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

// BioSource looks up reference page summaries and renders their extracts
type BioSource interface {
	Summary(ctx context.Context, title string) (*models.WikiSummary, error)
	ExtractMarkdown(summary *models.WikiSummary) string
}

// Enricher fills in missing profile details on a politician before the
// main research run: portrait image, party, biography, and issue stances.
// Fields that already hold a value are left alone.
type Enricher struct {
	politicians interfaces.PoliticianStorage
	images      interfaces.ImageResolver
	searcher    interfaces.WebSearcher
	fetcher     interfaces.ContentFetcher
	llm         interfaces.LLMService
	store       *prompts.Store
	wikiClient  BioSource
	logger      arbor.ILogger
}

// NewEnricher creates a new enricher
func NewEnricher(
	politicians interfaces.PoliticianStorage,
	images interfaces.ImageResolver,
	searcher interfaces.WebSearcher,
	fetcher interfaces.ContentFetcher,
	llm interfaces.LLMService,
	store *prompts.Store,
	wikiClient BioSource,
	logger arbor.ILogger,
) *Enricher {
	return &Enricher{
		politicians: politicians,
		images:      images,
		searcher:    searcher,
		fetcher:     fetcher,
		llm:         llm,
		store:       store,
		wikiClient:  wikiClient,
		logger:      logger,
	}
}

// Enrich fills empty profile fields and persists the politician when
// anything changed. Enrichment is best effort: individual lookups that
// fail leave their field empty for the next run.
func (e *Enricher) Enrich(ctx context.Context, politician *models.Politician, position string) error {
	if !politician.NeedsEnrichment() {
		return nil
	}

	changed := false

	if politician.ImageURL == "" {
		if candidate := e.images.FindImage(ctx, politician.Name, position); candidate != nil {
			politician.ImageURL = candidate.URL
			changed = true
			e.logger.Debug().
				Str("name", politician.Name).
				Str("source", candidate.Source).
				Msg("Enriched politician image")
		}
	}

	if politician.Party == "" || politician.Bio == "" || politician.Issues == "" {
		docs := e.gatherDocs(ctx, politician.Name, position)
		fields := e.extractFields(ctx, politician.Name, position, docs)
		if politician.Party == "" && fields.Party != "" {
			politician.Party = fields.Party
			changed = true
		}
		if politician.Bio == "" && fields.Bio != "" {
			politician.Bio = fields.Bio
			changed = true
		}
		if politician.Issues == "" && fields.Stances != "" {
			politician.Issues = fields.Stances
			changed = true
		}
	}

	// Wikipedia extract as biography fallback
	if politician.Bio == "" {
		if summary, err := e.wikiClient.Summary(ctx, politician.Name); err == nil && summary != nil {
			if bio := e.wikiClient.ExtractMarkdown(summary); bio != "" {
				politician.Bio = bio
				changed = true
			}
		}
	}

	if !changed {
		return nil
	}

	if err := e.politicians.Update(ctx, politician); err != nil {
		return err
	}
	e.logger.Info().Str("name", politician.Name).Msg("Politician profile enriched")
	return nil
}

// gatherDocs runs a few targeted biographical queries and fetches the
// top pages, independent of the main research gathering.
func (e *Enricher) gatherDocs(ctx context.Context, name, position string) []string {
	queries := []string{
		name + " political party affiliation",
		name + " biography",
		strings.TrimSpace(name + " " + position + " profile"),
	}

	var docs []string
	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		for _, result := range e.searcher.Search(ctx, query, 1) {
			if content := e.fetcher.Fetch(ctx, result.URL); content != "" {
				docs = append(docs, content)
			}
		}
	}
	return docs
}

func (e *Enricher) extractFields(ctx context.Context, name, position string, docs []string) analysis.EnrichmentFields {
	packed := prompts.PackDocuments(docs)
	if packed == "" {
		return analysis.EnrichmentFields{}
	}

	prompt, err := e.store.Render(prompts.KeyEnrichment, map[string]string{
		"name":      name,
		"position":  position,
		"documents": packed,
	})
	if err != nil {
		return analysis.EnrichmentFields{}
	}

	response, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		e.logger.Debug().Err(err).Str("name", name).Msg("Enrichment completion failed")
		return analysis.EnrichmentFields{}
	}
	return analysis.ParseEnrichment(response)
}
