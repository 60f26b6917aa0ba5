package search

import (
	"net/url"
	"regexp"
	"strings"
)

// Extensions that point at downloads or media rather than readable pages
var excludedExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".zip", ".rar", ".7z", ".tar", ".gz",
	".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv",
	".exe", ".dmg", ".apk",
}

// Catches download endpoints that hide the file behind a query parameter,
// e.g. ?filename=report.pdf or ?filetype=doc
var fileParamPattern = regexp.MustCompile(`(?i)file(name|type)=[^&]*\.?(pdf|docx?|xlsx?|pptx?|jpe?g|png|gif|zip)`)

// IsWebsiteURL reports whether a URL points at a fetchable HTML page.
// Relative URLs, non-HTTP schemes, and file downloads are rejected.
func IsWebsiteURL(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	if fileParamPattern.MatchString(parsed.RawQuery) {
		return false
	}

	return true
}

// FilterWebsiteURLs returns the URLs that pass IsWebsiteURL, preserving order
func FilterWebsiteURLs(urls []string) []string {
	filtered := make([]string, 0, len(urls))
	for _, u := range urls {
		if IsWebsiteURL(u) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
