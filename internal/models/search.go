package models

// SearchResult is a transient web search hit used within a single pipeline
// run to drive content fetching. It is not persisted; the subset that yields
// usable content is retained as ResearchResult sources.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Query   string `json:"query"` // Originating query, tracked for source attribution
}

// WikiSummary is the subset of the Wikipedia REST page summary used for
// name verification, context gathering and image resolution.
type WikiSummary struct {
	Title         string `json:"title"`
	Extract       string `json:"extract"`
	ExtractHTML   string `json:"extract_html"`
	PageURL       string `json:"page_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	OriginalImage string `json:"original_image"`
}

// BestImage returns the highest-resolution image available, preferring the
// original over the thumbnail.
func (w *WikiSummary) BestImage() string {
	if w.OriginalImage != "" {
		return w.OriginalImage
	}
	return w.ThumbnailURL
}

// ImageCandidate describes a portrait image found for a politician
type ImageCandidate struct {
	URL    string `json:"url"`
	Source string `json:"source"` // "wikipedia", "duckduckgo", "google"
}
