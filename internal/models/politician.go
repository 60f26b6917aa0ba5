package models

import (
	"time"
)

// Politician stores basic information about a researched politician.
// One politician can have multiple research results over time.
type Politician struct {
	ID        string    `json:"id" badgerhold:"key"` // pol_<uuid>
	Name      string    `json:"name"`                // Canonical name, natural key for case-insensitive lookups
	ImageURL  string    `json:"image_url,omitempty"`
	Party     string    `json:"party,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Issues    string    `json:"issues,omitempty"` // Policy stances as markdown
	CreatedAt time.Time `json:"created_at"`
}

// NeedsEnrichment reports whether any of the enrichable fields are still empty
func (p *Politician) NeedsEnrichment() bool {
	return p.Party == "" || p.ImageURL == "" || p.Bio == "" || p.Issues == ""
}

// Source records one web page that contributed content to a research result
type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Query   string `json:"query"`   // Search query that surfaced this page
	Content string `json:"content"` // Raw extracted text
}

// ResearchResult stores one completed analysis run for a politician at a
// specific position. Results are immutable once created; stale results are
// superseded by new rows rather than updated in place.
type ResearchResult struct {
	ID              string    `json:"id" badgerhold:"key"` // res_<uuid>
	PoliticianID    string    `json:"politician_id" badgerhold:"index"`
	Position        string    `json:"position"`
	Background      string    `json:"background"`
	Accomplishments string    `json:"accomplishments"`
	Criticisms      string    `json:"criticisms"`
	Summary         string    `json:"summary"`
	Sources         []Source  `json:"sources"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Age returns how old this result is relative to now
func (r *ResearchResult) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

// IsFresh reports whether this result is younger than maxAge. The comparison
// is strictly less-than: a result exactly at the threshold is stale.
func (r *ResearchResult) IsFresh(now time.Time, maxAge time.Duration) bool {
	return r.Age(now) < maxAge
}
