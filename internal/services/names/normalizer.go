package names

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/search"
)

// SummaryClient looks up reference page summaries by title
type SummaryClient interface {
	Summary(ctx context.Context, title string) (*models.WikiSummary, error)
}

// Normalizer implements the NameNormalizer interface. It reconciles
// nicknames and informal spellings to a canonical name by asking the
// language model, then verifying the answer against reference pages
// before trusting it.
type Normalizer struct {
	llm        interfaces.LLMService
	wikiClient SummaryClient
	searcher   interfaces.WebSearcher
	logger     arbor.ILogger
}

// NewNormalizer creates a new name normalizer
func NewNormalizer(llm interfaces.LLMService, wikiClient SummaryClient, searcher interfaces.WebSearcher, logger arbor.ILogger) interfaces.NameNormalizer {
	return &Normalizer{
		llm:        llm,
		wikiClient: wikiClient,
		searcher:   searcher,
		logger:     logger,
	}
}

// Normalize resolves a possibly informal name to its canonical form.
// The chain never fails hard: an unverified model answer is still
// returned without a reference URL, and the original name is the final
// fallback.
func (n *Normalizer) Normalize(ctx context.Context, name, position string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return name, ""
	}

	candidate := n.askModel(ctx, name, position)
	if candidate != "" && !strings.EqualFold(candidate, name) {
		if refURL := n.verify(ctx, candidate, position); refURL != "" {
			n.logger.Info().
				Str("input", name).
				Str("resolved", candidate).
				Str("reference", refURL).
				Msg("Resolved name to canonical form")
			return candidate, refURL
		}
		n.logger.Debug().
			Str("input", name).
			Str("candidate", candidate).
			Msg("No reference page confirmed the resolved name")
		return candidate, ""
	}

	// The input may already be the canonical name
	if refURL := n.verify(ctx, name, position); refURL != "" {
		return name, refURL
	}

	return name, ""
}

// askModel gathers reference context for the name and asks the model for
// the full formal name. Returns "" when the model has no confident answer.
func (n *Normalizer) askModel(ctx context.Context, name, position string) string {
	contextText := n.gatherContext(ctx, name, position)

	prompt := fmt.Sprintf(
		"What is the full formal name of the politician known as %q", name)
	if position != "" {
		prompt += fmt.Sprintf(" (%s)", position)
	}
	prompt += "?\n\n"
	if contextText != "" {
		prompt += "Context:\n" + contextText + "\n"
	}
	prompt += "Answer with the full name only, nothing else. If you are not sure, answer UNKNOWN."

	answer, err := n.llm.Complete(ctx, prompt)
	if err != nil {
		n.logger.Debug().Err(err).Str("name", name).Msg("Name resolution completion failed")
		return ""
	}

	answer = strings.Trim(strings.TrimSpace(answer), `"'.`)
	if answer == "" || strings.EqualFold(answer, "unknown") {
		return ""
	}
	// A real name is a handful of words, anything longer is the model
	// explaining itself
	if len(strings.Fields(answer)) > 6 || strings.ContainsAny(answer, "\n:") {
		return ""
	}
	return answer
}

// gatherContext collects background text for the prompt, preferring the
// reference summary page over general search. When the page misses, up to
// two searches biased toward encyclopedic and biographical sources run
// instead.
func (n *Normalizer) gatherContext(ctx context.Context, name, position string) string {
	if summary, err := n.wikiClient.Summary(ctx, name); err == nil && summary != nil && summary.Extract != "" {
		return "Wikipedia information: " + summary.Extract
	}

	base := strings.TrimSpace(name + " " + position)
	queries := []string{
		base + " politician wikipedia",
		base + " biography",
	}

	var contextText strings.Builder
	for _, query := range queries {
		for _, result := range n.searcher.Search(ctx, query, 3) {
			contextText.WriteString(result.Title)
			contextText.WriteString(": ")
			contextText.WriteString(result.Snippet)
			contextText.WriteString("\n")
		}
	}
	return contextText.String()
}

// verify confirms a name against reference pages and returns the page URL
// that confirmed it, or "".
func (n *Normalizer) verify(ctx context.Context, name, position string) string {
	summary, err := n.wikiClient.Summary(ctx, name)
	if err == nil && summary != nil {
		if VerifyMatch(summary.Title, summary.Extract, name, position) {
			return summary.PageURL
		}
	}

	// Direct lookup missed; the page may live under a different title
	results := n.searcher.Search(ctx, search.VerificationQuery(name, position), 3)
	for _, result := range results {
		if !strings.Contains(result.URL, "wikipedia.org") {
			continue
		}
		if VerifyMatch(result.Title, result.Snippet, name, position) {
			return result.URL
		}
	}
	return ""
}
