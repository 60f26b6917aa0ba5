package fetcher

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
)

// Pages yielding fewer words than this from the static pass are assumed to
// be JavaScript-rendered and escalate to the headless browser
const renderEscalationWords = 100

// Fetcher implements the ContentFetcher interface with a static HTTP pass
// and a headless-browser fallback for thin pages.
type Fetcher struct {
	httpClient *http.Client
	renderer   *Renderer
	userAgent  string
	logger     arbor.ILogger
}

// NewFetcher creates a new content fetcher. The renderer may be nil, in
// which case thin pages are returned as-is.
func NewFetcher(userAgent string, timeout time.Duration, renderer *Renderer, logger arbor.ILogger) interfaces.ContentFetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		renderer:   renderer,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Fetch retrieves readable text from a URL. Any failure yields an empty
// string so the caller can move on to the next source.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) string {
	text := f.fetchStatic(ctx, pageURL)

	if WordCount(text) < renderEscalationWords && f.renderer != nil {
		f.logger.Debug().
			Str("url", pageURL).
			Int("words", WordCount(text)).
			Msg("Static content too thin, escalating to browser render")

		if rendered := f.fetchRendered(ctx, pageURL); WordCount(rendered) > WordCount(text) {
			text = rendered
		}
	}

	return text
}

func (f *Fetcher) fetchStatic(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("Static fetch failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Debug().Int("status", resp.StatusCode).Str("url", pageURL).Msg("Static fetch returned non-OK status")
		return ""
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("Failed to parse page")
		return ""
	}
	return ExtractReadableText(doc)
}

func (f *Fetcher) fetchRendered(ctx context.Context, pageURL string) string {
	html, err := f.renderer.Render(ctx, pageURL)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", pageURL).Msg("Browser render failed")
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return ExtractReadableText(doc)
}
