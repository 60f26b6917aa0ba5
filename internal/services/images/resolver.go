package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/wiki"
)

// Resolver implements the ImageResolver interface with three tiers:
// Wikipedia page image, DuckDuckGo image search, then Google Images.
type Resolver struct {
	wikiClient *wiki.Client
	httpClient *http.Client
	userAgent  string
	logger     arbor.ILogger
}

// NewResolver creates a new image resolver
func NewResolver(wikiClient *wiki.Client, userAgent string, timeout time.Duration, logger arbor.ILogger) interfaces.ImageResolver {
	return &Resolver{
		wikiClient: wikiClient,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// FindImage returns the first acceptable portrait candidate, or nil when
// every tier comes up empty.
func (r *Resolver) FindImage(ctx context.Context, name, position string) *models.ImageCandidate {
	if candidate := r.fromWikipedia(ctx, name); candidate != nil {
		return candidate
	}
	if candidate := r.fromDuckDuckGo(ctx, name, position); candidate != nil {
		return candidate
	}
	if candidate := r.fromGoogle(ctx, name, position); candidate != nil {
		return candidate
	}

	r.logger.Debug().Str("name", name).Msg("No portrait image found")
	return nil
}

func (r *Resolver) fromWikipedia(ctx context.Context, name string) *models.ImageCandidate {
	summary, err := r.wikiClient.Summary(ctx, name)
	if err != nil {
		r.logger.Debug().Err(err).Str("name", name).Msg("Wikipedia image lookup failed")
		return nil
	}
	if summary == nil {
		return nil
	}

	imageURL := summary.BestImage()
	if imageURL == "" || !IsLikelyPortraitURL(imageURL) {
		return nil
	}

	r.logger.Debug().Str("name", name).Str("url", imageURL).Msg("Found Wikipedia portrait")
	return &models.ImageCandidate{URL: imageURL, Source: "wikipedia"}
}

// DuckDuckGo's image endpoint requires a vqd token obtained from the main
// search page first.
var vqdPattern = regexp.MustCompile(`vqd=["']?([\d-]+)["']?`)

func (r *Resolver) fromDuckDuckGo(ctx context.Context, name, position string) *models.ImageCandidate {
	query := strings.TrimSpace(name + " " + position)

	vqd, err := r.fetchVQD(ctx, query)
	if err != nil {
		r.logger.Debug().Err(err).Str("query", query).Msg("DuckDuckGo vqd handshake failed")
		return nil
	}

	endpoint := fmt.Sprintf("https://duckduckgo.com/i.js?l=us-en&o=json&q=%s&vqd=%s",
		url.QueryEscape(query), url.QueryEscape(vqd))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Referer", "https://duckduckgo.com/")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug().Err(err).Str("query", query).Msg("DuckDuckGo image search failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var apiResp struct {
		Results []struct {
			Image string `json:"image"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil
	}

	for _, result := range apiResp.Results {
		if IsLikelyPortraitURL(result.Image) && r.headCheck(ctx, result.Image) {
			r.logger.Debug().Str("name", name).Str("url", result.Image).Msg("Found DuckDuckGo portrait")
			return &models.ImageCandidate{URL: result.Image, Source: "duckduckgo"}
		}
	}
	return nil
}

func (r *Resolver) fetchVQD(ctx context.Context, query string) (string, error) {
	endpoint := "https://duckduckgo.com/?q=" + url.QueryEscape(query) + "&iax=images&ia=images"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	matches := vqdPattern.FindSubmatch(body)
	if len(matches) < 2 {
		return "", fmt.Errorf("vqd token not found in search page")
	}
	return string(matches[1]), nil
}

func (r *Resolver) fromGoogle(ctx context.Context, name, position string) *models.ImageCandidate {
	query := strings.TrimSpace(name + " " + position)

	// tbs=itp:face biases results toward portrait photos
	endpoint := "https://www.google.com/search?tbm=isch&tbs=itp:face&q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug().Err(err).Str("query", query).Msg("Google image search failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	for _, src := range googleCandidateURLs(doc) {
		if IsLikelyPortraitURL(src) && r.headCheck(ctx, src) {
			r.logger.Debug().Str("name", name).Str("url", src).Msg("Found Google portrait")
			return &models.ImageCandidate{URL: src, Source: "google"}
		}
	}
	return nil
}

// Google renders its image results through inline scripts; the img tags
// mostly hold base64 placeholders. Script payloads are scanned first,
// plain img sources second.
var googleImagePattern = regexp.MustCompile(`https?://[^"'\\\s]+\.(?:jpe?g|png|webp)`)

func googleCandidateURLs(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(src string) {
		if src != "" && !seen[src] {
			seen[src] = true
			urls = append(urls, src)
		}
	}

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, src := range googleImagePattern.FindAllString(sel.Text(), -1) {
			add(src)
		}
	})
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok {
			src, _ = sel.Attr("data-src")
		}
		// Inline data URIs are placeholders, not photos
		if strings.HasPrefix(src, "http") {
			add(src)
		}
	})
	return urls
}
