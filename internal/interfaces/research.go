package interfaces

import (
	"context"

	"github.com/ternarybob/scrutor/internal/models"
)

// SearchProvider returns ranked candidate URLs for a query string.
// Implementations wrap an external search engine; they return whatever the
// engine surfaced without filtering.
type SearchProvider interface {
	// URLs returns up to max ranked result URLs for the query
	URLs(ctx context.Context, query string, max int) ([]string, error)
}

// WebSearcher executes a web search and returns enriched results with
// title and snippet per URL. Individual URL failures are swallowed; a total
// provider failure yields an empty list, not an error.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) []models.SearchResult
}

// ContentFetcher retrieves readable text from a URL. Failures yield an
// empty string rather than an error.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// ImageResolver finds a representative portrait image for a named person.
// Returns nil when no acceptable candidate is found.
type ImageResolver interface {
	FindImage(ctx context.Context, name, position string) *models.ImageCandidate
}

// NameNormalizer reconciles an informal or nickname input to a canonical
// name. Best effort: it never fails hard, falling back to the original name.
type NameNormalizer interface {
	// Normalize returns the resolved name and the reference URL that
	// verified it, or the original name and "" when unresolved.
	Normalize(ctx context.Context, name, position string) (string, string)
}

// EntityEnricher fills missing profile fields on a politician and
// persists the updated entity.
type EntityEnricher interface {
	Enrich(ctx context.Context, politician *models.Politician, position string) error
}

// ResearchService is the primary operation exposed to the surrounding
// application: research a politician and return a tagged outcome.
type ResearchService interface {
	Research(ctx context.Context, name, position string, opts models.ResearchOptions) *models.ResearchOutcome
}
