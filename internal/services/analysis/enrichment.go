package analysis

import (
	"strings"
)

// EnrichmentFields holds the profile details extracted from an enrichment
// completion. Empty fields mean the documents did not say.
type EnrichmentFields struct {
	Party   string
	Bio     string
	Stances string
}

// ParseEnrichment parses the line-oriented enrichment response format:
//
//	PARTY: <...>
//	BIO: <...>
//	STANCES: <...>
//
// UNKNOWN values map to empty strings. The STANCES section may span
// multiple lines (a markdown bullet list).
func ParseEnrichment(response string) EnrichmentFields {
	fields := EnrichmentFields{}
	var stances []string
	inStances := false

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "PARTY:"):
			inStances = false
			fields.Party = cleanValue(strings.TrimPrefix(trimmed, "PARTY:"))
		case strings.HasPrefix(trimmed, "BIO:"):
			inStances = false
			fields.Bio = cleanValue(strings.TrimPrefix(trimmed, "BIO:"))
		case strings.HasPrefix(trimmed, "STANCES:"):
			inStances = true
			if v := cleanValue(strings.TrimPrefix(trimmed, "STANCES:")); v != "" {
				stances = append(stances, v)
			}
		case inStances && trimmed != "":
			stances = append(stances, trimmed)
		}
	}

	fields.Stances = strings.Join(stances, "\n")
	return fields
}

func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "unknown") {
		return ""
	}
	return value
}
