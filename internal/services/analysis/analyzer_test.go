package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

// fakeLLM answers by matching substrings against the prompt, and can be
// told to fail for specific aspects.
type fakeLLM struct {
	failFor []string
	calls   int
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	for _, marker := range f.failFor {
		if strings.Contains(prompt, marker) {
			return "", fmt.Errorf("simulated failure for %s", marker)
		}
	}
	switch {
	case strings.Contains(prompt, "Combine the three sections"):
		return "generated summary", nil
	case strings.Contains(prompt, "background"):
		return "generated background", nil
	case strings.Contains(prompt, "accomplishments"):
		return "generated accomplishments", nil
	case strings.Contains(prompt, "criticisms"):
		return "generated criticisms", nil
	}
	return "generated text", nil
}

func (f *fakeLLM) HealthCheck(context.Context) error { return nil }
func (f *fakeLLM) Close() error                      { return nil }

func newTestAnalyzer(llm *fakeLLM) *Analyzer {
	return NewAnalyzer(llm, prompts.NewStore(), common.GetLogger())
}

func TestAnalyzeAllAspectsSucceed(t *testing.T) {
	llm := &fakeLLM{}
	analyzer := newTestAnalyzer(llm)

	result, err := analyzer.Analyze(context.Background(), "Maria Santos", "Senator", []string{"doc one content"})
	require.NoError(t, err)

	assert.Equal(t, "generated background", result.Background)
	assert.Equal(t, "generated accomplishments", result.Accomplishments)
	assert.Equal(t, "generated criticisms", result.Criticisms)
	assert.Equal(t, "generated summary", result.Summary)
	assert.Equal(t, 4, llm.calls)
}

func TestAnalyzeSingleAspectFailureDegrades(t *testing.T) {
	llm := &fakeLLM{failFor: []string{"criticisms"}}
	analyzer := newTestAnalyzer(llm)

	result, err := analyzer.Analyze(context.Background(), "Maria Santos", "", []string{"doc"})
	require.NoError(t, err)

	assert.Equal(t, "generated background", result.Background)
	assert.Equal(t, aspectUnavailable, result.Criticisms)
	assert.Equal(t, "generated summary", result.Summary)
}

func TestAnalyzeSummaryFailureDegrades(t *testing.T) {
	llm := &fakeLLM{failFor: []string{"Combine the three sections"}}
	analyzer := newTestAnalyzer(llm)

	result, err := analyzer.Analyze(context.Background(), "Maria Santos", "", []string{"doc"})
	require.NoError(t, err)

	assert.Equal(t, "generated background", result.Background)
	assert.Equal(t, "generated accomplishments", result.Accomplishments)
	assert.Equal(t, "generated criticisms", result.Criticisms)
	assert.Equal(t, aspectUnavailable, result.Summary)
}

func TestAnalyzeAllAspectsFailing(t *testing.T) {
	llm := &fakeLLM{failFor: []string{"background", "accomplishments", "criticisms"}}
	analyzer := newTestAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Maria Santos", "", []string{"doc"})
	assert.Error(t, err)
}

func TestAnalyzeNoDocuments(t *testing.T) {
	analyzer := newTestAnalyzer(&fakeLLM{})

	_, err := analyzer.Analyze(context.Background(), "Maria Santos", "", nil)
	assert.Error(t, err)
}
