package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/models"
)

const (
	summaryEndpoint = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	userAgent       = "ScrutorBot/1.0 (https://github.com/ternarybob/scrutor)"
)

// Client wraps the Wikipedia REST summary API
type Client struct {
	httpClient *http.Client
	converter  *md.Converter
	logger     arbor.ILogger
}

// NewClient creates a new Wikipedia client
func NewClient(logger arbor.ILogger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		converter: md.NewConverter("", true, nil),
		logger:    logger,
	}
}

// Summary fetches the REST summary for a page title. Returns nil when the
// page does not exist or is a disambiguation page.
func (c *Client) Summary(ctx context.Context, title string) (*models.WikiSummary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("page title is required")
	}

	// The REST API uses underscores in titles
	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	endpoint := summaryEndpoint + slug

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug().Str("title", title).Msg("Wikipedia page not found")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("wikipedia returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode wikipedia response: %w", err)
	}

	// Disambiguation pages describe many people, none of them reliably the
	// one asked about
	if apiResp.Type == "disambiguation" {
		c.logger.Debug().Str("title", title).Msg("Wikipedia page is a disambiguation page")
		return nil, nil
	}

	summary := &models.WikiSummary{
		Title:       apiResp.Title,
		Extract:     apiResp.Extract,
		ExtractHTML: apiResp.ExtractHTML,
	}
	if apiResp.ContentURLs != nil {
		summary.PageURL = apiResp.ContentURLs.Desktop.Page
	}
	if apiResp.Thumbnail != nil {
		summary.ThumbnailURL = apiResp.Thumbnail.Source
	}
	if apiResp.OriginalImage != nil {
		summary.OriginalImage = apiResp.OriginalImage.Source
	}
	return summary, nil
}

// ExtractMarkdown converts the summary's HTML extract to markdown, falling
// back to the plain extract when conversion fails.
func (c *Client) ExtractMarkdown(summary *models.WikiSummary) string {
	if summary == nil {
		return ""
	}
	if summary.ExtractHTML == "" {
		return summary.Extract
	}
	markdown, err := c.converter.ConvertString(summary.ExtractHTML)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", summary.Title).Msg("Failed to convert extract to markdown")
		return summary.Extract
	}
	return strings.TrimSpace(markdown)
}

type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ExtractHTML string `json:"extract_html"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	ContentURLs *struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}
