package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/models"
)

func fixtures() (*models.Politician, *models.ResearchResult) {
	politician := &models.Politician{
		ID:     "pol_x",
		Name:   "Maria Santos",
		Party:  "Liberal Party",
		Bio:    "A three-term senator.",
		Issues: "- Supports universal healthcare",
	}
	result := &models.ResearchResult{
		ID:              "res_x",
		PoliticianID:    "pol_x",
		Position:        "Senator",
		Summary:         "Balanced summary.",
		Background:      "Background section.",
		Accomplishments: "Accomplishments section.",
		Criticisms:      "Criticisms section.",
		Sources: []models.Source{
			{URL: "https://example.com/a", Title: "Profile"},
			{URL: "https://example.com/b"},
		},
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	return politician, result
}

func TestMarkdown(t *testing.T) {
	exporter := NewExporter(common.GetLogger())
	politician, result := fixtures()

	md := exporter.Markdown(politician, result)

	assert.Contains(t, md, "# Maria Santos")
	assert.Contains(t, md, "**Party:** Liberal Party")
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "## Criticisms")
	assert.Contains(t, md, "- [Profile](https://example.com/a)")
	// Untitled sources fall back to the URL
	assert.Contains(t, md, "- [https://example.com/b](https://example.com/b)")
	assert.Contains(t, md, "Generated 30 August 2026")
}

func TestMarkdownSkipsEmptySections(t *testing.T) {
	exporter := NewExporter(common.GetLogger())
	politician, result := fixtures()
	result.Criticisms = ""
	politician.Issues = ""

	md := exporter.Markdown(politician, result)

	assert.NotContains(t, md, "## Criticisms")
	assert.NotContains(t, md, "## Positions on Issues")
}

func TestHTML(t *testing.T) {
	exporter := NewExporter(common.GetLogger())
	politician, result := fixtures()

	html, err := exporter.HTML(politician, result)
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Maria Santos")
	assert.Contains(t, html, `<a href="https://example.com/a"`)
}

func TestPDF(t *testing.T) {
	exporter := NewExporter(common.GetLogger())
	politician, result := fixtures()

	data, err := exporter.PDF(politician, result)
	require.NoError(t, err)

	assert.True(t, len(data) > 1000, "PDF output should not be trivially small")
	assert.Equal(t, "%PDF", string(data[:4]))
}
