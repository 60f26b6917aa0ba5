package enrich

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

type fakePoliticians struct {
	updated []*models.Politician
}

func (f *fakePoliticians) FindByName(context.Context, string) (*models.Politician, error) {
	return nil, nil
}

func (f *fakePoliticians) GetOrCreate(context.Context, string) (*models.Politician, bool, error) {
	return nil, false, nil
}

func (f *fakePoliticians) Update(_ context.Context, p *models.Politician) error {
	f.updated = append(f.updated, p)
	return nil
}

type fakeImages struct {
	candidate *models.ImageCandidate
	calls     int
}

func (f *fakeImages) FindImage(context.Context, string, string) *models.ImageCandidate {
	f.calls++
	return f.candidate
}

type fakeSearcher struct {
	results []models.SearchResult
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) []models.SearchResult {
	f.queries = append(f.queries, query)
	return f.results
}

type fakeFetcher struct {
	content string
}

func (f *fakeFetcher) Fetch(context.Context, string) string { return f.content }

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(context.Context, string) (string, error) { return f.response, f.err }
func (f *fakeLLM) HealthCheck(context.Context) error                { return nil }
func (f *fakeLLM) Close() error                                     { return nil }

type fakeBioSource struct {
	summary *models.WikiSummary
}

func (f *fakeBioSource) Summary(context.Context, string) (*models.WikiSummary, error) {
	return f.summary, nil
}

func (f *fakeBioSource) ExtractMarkdown(summary *models.WikiSummary) string {
	if summary == nil {
		return ""
	}
	return summary.Extract
}

type deps struct {
	politicians *fakePoliticians
	images      *fakeImages
	searcher    *fakeSearcher
	llm         *fakeLLM
	wiki        *fakeBioSource
}

func newTestEnricher(d *deps) *Enricher {
	if d.politicians == nil {
		d.politicians = &fakePoliticians{}
	}
	if d.images == nil {
		d.images = &fakeImages{}
	}
	if d.searcher == nil {
		d.searcher = &fakeSearcher{results: []models.SearchResult{
			{URL: "https://example.com/bio", Title: "Bio"},
		}}
	}
	if d.llm == nil {
		d.llm = &fakeLLM{response: "PARTY: UNKNOWN\nBIO: UNKNOWN\nSTANCES: UNKNOWN"}
	}
	if d.wiki == nil {
		d.wiki = &fakeBioSource{}
	}
	return NewEnricher(d.politicians, d.images, d.searcher, &fakeFetcher{content: "page content"},
		d.llm, prompts.NewStore(), d.wiki, common.GetLogger())
}

func TestEnrichFillsEmptyFields(t *testing.T) {
	d := &deps{
		images: &fakeImages{candidate: &models.ImageCandidate{URL: "https://example.com/p.jpg", Source: "wikipedia"}},
		llm:    &fakeLLM{response: "PARTY: Liberal Party\nBIO: A three-term senator.\nSTANCES: - Healthcare"},
	}
	enricher := newTestEnricher(d)
	politician := &models.Politician{ID: "pol_x", Name: "Maria Santos"}

	err := enricher.Enrich(context.Background(), politician, "Senator")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/p.jpg", politician.ImageURL)
	assert.Equal(t, "Liberal Party", politician.Party)
	assert.Equal(t, "A three-term senator.", politician.Bio)
	assert.Equal(t, "- Healthcare", politician.Issues)
	require.Len(t, d.politicians.updated, 1)
}

func TestEnrichLeavesExistingFieldsAlone(t *testing.T) {
	d := &deps{
		llm: &fakeLLM{response: "PARTY: Some Other Party\nBIO: Replacement bio.\nSTANCES: - Replacement"},
	}
	enricher := newTestEnricher(d)
	politician := &models.Politician{
		ID:    "pol_x",
		Name:  "Maria Santos",
		Party: "Liberal Party",
		Bio:   "The original bio.",
	}

	err := enricher.Enrich(context.Background(), politician, "Senator")
	require.NoError(t, err)

	assert.Equal(t, "Liberal Party", politician.Party)
	assert.Equal(t, "The original bio.", politician.Bio)
	assert.Equal(t, "- Replacement", politician.Issues)
}

func TestEnrichCompleteProfileIsNoop(t *testing.T) {
	d := &deps{}
	enricher := newTestEnricher(d)
	politician := &models.Politician{
		ID:       "pol_x",
		Name:     "Maria Santos",
		ImageURL: "https://example.com/p.jpg",
		Party:    "Liberal Party",
		Bio:      "A senator.",
		Issues:   "- Healthcare",
	}

	err := enricher.Enrich(context.Background(), politician, "Senator")
	require.NoError(t, err)

	assert.Equal(t, 0, d.images.calls)
	assert.Empty(t, d.politicians.updated)
}

func TestEnrichWikiBioFallback(t *testing.T) {
	d := &deps{
		llm:  &fakeLLM{err: fmt.Errorf("provider down")},
		wiki: &fakeBioSource{summary: &models.WikiSummary{Title: "Maria Santos", Extract: "Maria Santos is a senator."}},
	}
	enricher := newTestEnricher(d)
	politician := &models.Politician{ID: "pol_x", Name: "Maria Santos"}

	err := enricher.Enrich(context.Background(), politician, "Senator")
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos is a senator.", politician.Bio)
}

func TestEnrichRunsTargetedQueries(t *testing.T) {
	d := &deps{searcher: &fakeSearcher{}}
	enricher := newTestEnricher(d)
	politician := &models.Politician{ID: "pol_x", Name: "Maria Santos"}

	err := enricher.Enrich(context.Background(), politician, "Senator")
	require.NoError(t, err)

	joined := strings.Join(d.searcher.queries, "\n")
	assert.Contains(t, joined, "Maria Santos political party affiliation")
	assert.Contains(t, joined, "Maria Santos biography")
	assert.Contains(t, joined, "Maria Santos Senator profile")
}
