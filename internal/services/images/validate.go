package images

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Hosts trusted to serve direct image files without extension checks
var trustedImageHosts = []string{
	"upload.wikimedia.org",
}

// URL fragments that mark a candidate as decoration rather than a portrait
var rejectKeywords = []string{
	"logo", "icon", "banner", "flag", "seal", "chart", "map",
	"sprite", "avatar-default", "placeholder",
}

var adDomains = []string{
	"doubleclick.net", "googlesyndication.com", "adservice",
	"amazon-adsystem.com", "taboola.com", "outbrain.com",
}

// IsLikelyPortraitURL applies static checks to an image candidate URL:
// scheme, extension or trusted host, and rejection of decoration keywords
// and ad domains.
func IsLikelyPortraitURL(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	for _, ad := range adDomains {
		if strings.Contains(host, ad) {
			return false
		}
	}

	lowered := strings.ToLower(parsed.Path)
	for _, kw := range rejectKeywords {
		if strings.Contains(lowered, kw) {
			return false
		}
	}

	for _, trusted := range trustedImageHosts {
		if host == trusted {
			return true
		}
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

// headCheck confirms the URL serves an image via a HEAD request. Network
// failures pass the candidate through; the static checks already ran.
func (r *Resolver) headCheck(ctx context.Context, imageURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "image/")
}
