package search

import (
	"fmt"
	"strings"
)

// Query templates per research aspect. {name} and {position} are
// substituted at generation time.
var (
	baseQueryTemplates = []string{
		"{name} politician profile",
		"{name} political career",
		"{name} biography",
	}

	accomplishmentQueryTemplates = []string{
		"{name} accomplishments achievements",
		"{name} projects legislation",
		"{name} awards recognition",
	}

	criticismQueryTemplates = []string{
		"{name} controversy",
		"{name} criticism issues",
		"{name} corruption allegations",
		"{name} scandal news",
	}

	backgroundQueryTemplates = []string{
		"{name} education background",
		"{name} family history",
		"{name} early life",
	}

	positionQueryTemplates = []string{
		"{name} {position} platform",
		"{name} {position} track record",
	}
)

// GenerateQueries builds the full query set for a politician. Position
// templates are only included when a position is given.
func GenerateQueries(name, position string) []string {
	queries := make([]string, 0, 16)
	queries = append(queries, render(baseQueryTemplates, name, position)...)
	queries = append(queries, render(accomplishmentQueryTemplates, name, position)...)
	queries = append(queries, render(criticismQueryTemplates, name, position)...)
	queries = append(queries, render(backgroundQueryTemplates, name, position)...)
	if strings.TrimSpace(position) != "" {
		queries = append(queries, render(positionQueryTemplates, name, position)...)
	}
	return queries
}

// VerificationQuery builds the query used when checking a resolved name
// against reference pages.
func VerificationQuery(name, position string) string {
	if strings.TrimSpace(position) != "" {
		return fmt.Sprintf("%s %s site:en.wikipedia.org", name, position)
	}
	return fmt.Sprintf("%s politician site:en.wikipedia.org", name)
}

func render(templates []string, name, position string) []string {
	rendered := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		q := strings.ReplaceAll(tmpl, "{name}", name)
		q = strings.ReplaceAll(q, "{position}", position)
		rendered = append(rendered, strings.Join(strings.Fields(q), " "))
	}
	return rendered
}
