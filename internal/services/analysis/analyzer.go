package analysis

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

// Result holds the four analysis sections produced for a politician
type Result struct {
	Background      string
	Accomplishments string
	Criticisms      string
	Summary         string
}

const aspectUnavailable = "No information available for this section."

// Analyzer runs the staged analysis: three independent aspect completions
// over the gathered documents, then a summary over the three sections.
type Analyzer struct {
	llm    interfaces.LLMService
	store  *prompts.Store
	logger arbor.ILogger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(llm interfaces.LLMService, store *prompts.Store, logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		llm:    llm,
		store:  store,
		logger: logger,
	}
}

// Analyze produces the four sections for a politician from gathered source
// documents. Any failed call, the summary included, degrades to a
// placeholder section; the whole call fails only when every aspect fails.
func (a *Analyzer) Analyze(ctx context.Context, name, position string, docs []string) (*Result, error) {
	packed := prompts.PackDocuments(docs)
	if packed == "" {
		return nil, fmt.Errorf("no documents to analyze")
	}

	result := &Result{}
	aspects := []struct {
		key    string
		target *string
	}{
		{prompts.KeyBackground, &result.Background},
		{prompts.KeyAccomplishments, &result.Accomplishments},
		{prompts.KeyCriticisms, &result.Criticisms},
	}

	failures := 0
	for _, aspect := range aspects {
		text, err := a.completeAspect(ctx, aspect.key, name, position, packed)
		if err != nil {
			a.logger.Warn().Err(err).Str("aspect", aspect.key).Str("name", name).Msg("Aspect analysis failed")
			*aspect.target = aspectUnavailable
			failures++
			continue
		}
		*aspect.target = text
	}

	if failures == len(aspects) {
		return nil, fmt.Errorf("all analysis aspects failed for %s", name)
	}

	summary, err := a.summarize(ctx, name, position, result)
	if err != nil {
		a.logger.Warn().Err(err).Str("name", name).Msg("Summary generation failed")
		summary = aspectUnavailable
	}
	result.Summary = summary

	a.logger.Info().
		Str("name", name).
		Int("documents", len(docs)).
		Int("failed_aspects", failures).
		Msg("Staged analysis completed")
	return result, nil
}

func (a *Analyzer) completeAspect(ctx context.Context, key, name, position, packed string) (string, error) {
	prompt, err := a.store.Render(key, map[string]string{
		"name":      name,
		"position":  position,
		"documents": packed,
	})
	if err != nil {
		return "", err
	}
	return a.llm.Complete(ctx, prompt)
}

func (a *Analyzer) summarize(ctx context.Context, name, position string, result *Result) (string, error) {
	prompt, err := a.store.Render(prompts.KeySummary, map[string]string{
		"name":            name,
		"position":        position,
		"background":      result.Background,
		"accomplishments": result.Accomplishments,
		"criticisms":      result.Criticisms,
	})
	if err != nil {
		return "", err
	}
	return a.llm.Complete(ctx, prompt)
}
