package search

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"golang.org/x/time/rate"
)

const (
	// Raw URLs requested per result wanted, before filtering
	rawHeadroom = 3

	// Valid URLs kept per result wanted, before enrichment
	validHeadroom = 2

	snippetMinParagraph = 50
	snippetTarget       = 200
	snippetMax          = 250
)

// Searcher implements the WebSearcher interface. It asks the provider for
// more URLs than requested, filters out non-page links, then visits each
// survivor to pick up a title and snippet.
type Searcher struct {
	provider   interfaces.SearchProvider
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     arbor.ILogger
}

// NewSearcher creates a new web searcher
func NewSearcher(provider interfaces.SearchProvider, userAgent string, timeout, fetchDelay time.Duration, logger arbor.ILogger) interfaces.WebSearcher {
	if fetchDelay <= 0 {
		fetchDelay = time.Second
	}
	return &Searcher{
		provider:   provider,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(fetchDelay), 1),
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Search returns up to numResults enriched results. A provider failure
// yields an empty list, never an error.
func (s *Searcher) Search(ctx context.Context, query string, numResults int) []models.SearchResult {
	if numResults <= 0 {
		return nil
	}

	rawURLs, err := s.provider.URLs(ctx, query, numResults*rawHeadroom)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Search provider failed")
		return []models.SearchResult{}
	}

	validURLs := FilterWebsiteURLs(rawURLs)
	if len(validURLs) > numResults*validHeadroom {
		validURLs = validURLs[:numResults*validHeadroom]
	}

	results := make([]models.SearchResult, 0, numResults)
	for _, u := range validURLs {
		if len(results) >= numResults {
			break
		}
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}

		title, snippet := s.preview(ctx, u)
		if title == "" && snippet == "" {
			continue
		}
		results = append(results, models.SearchResult{
			URL:     u,
			Title:   title,
			Snippet: snippet,
			Query:   query,
		})
	}

	s.logger.Debug().
		Str("query", query).
		Int("raw", len(rawURLs)).
		Int("valid", len(validURLs)).
		Int("results", len(results)).
		Msg("Web search completed")
	return results
}

// preview fetches a page and extracts its title and a short snippet.
// Any failure yields empty strings so the caller can skip the URL.
func (s *Searcher) preview(ctx context.Context, pageURL string) (string, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", ""
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug().Err(err).Str("url", pageURL).Msg("Preview fetch failed")
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	return title, BuildSnippet(doc)
}

// BuildSnippet assembles a snippet from page paragraphs. Paragraphs shorter
// than snippetMinParagraph characters are skipped; accumulation stops once
// the snippet reaches snippetTarget characters, and the result is capped at
// snippetMax.
func BuildSnippet(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) <= snippetMinParagraph {
			return true
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		return sb.Len() < snippetTarget
	})

	snippet := sb.String()
	if len(snippet) > snippetMax {
		cut := snippet[:snippetMax]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		snippet = cut + "..."
	}
	return snippet
}
