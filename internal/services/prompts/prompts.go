package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template keys for the staged analysis and supporting operations
const (
	KeyBackground      = "background"
	KeyAccomplishments = "accomplishments"
	KeyCriticisms      = "criticisms"
	KeySummary         = "summary"
	KeyEnrichment      = "enrichment"
	KeyQandA           = "qanda"
)

var defaultTemplates = map[string]string{
	KeyBackground: `You are a political researcher. Based on the documents below, write a factual
overview of the background of {name}{position_clause}: education, family,
early career, and path into politics. Cite only what the documents support.
Write in neutral, plain prose.

{documents}`,

	KeyAccomplishments: `You are a political researcher. Based on the documents below, list the
verifiable accomplishments of {name}{position_clause}: legislation, projects,
programs, and recognitions. Cite only what the documents support. Write in
neutral, plain prose.

{documents}`,

	KeyCriticisms: `You are a political researcher. Based on the documents below, describe the
criticisms, controversies, and allegations involving {name}{position_clause}.
Distinguish proven findings from unproven allegations. Cite only what the
documents support. Write in neutral, plain prose.

{documents}`,

	KeySummary: `You are a political researcher. Combine the three sections below into a
balanced summary of {name}{position_clause} for a voter deciding how to vote.
Keep it under 300 words.

BACKGROUND:
{background}

ACCOMPLISHMENTS:
{accomplishments}

CRITICISMS:
{criticisms}`,

	KeyEnrichment: `Based on the documents below about {name}{position_clause}, answer in exactly
this format, one line each. Use UNKNOWN when the documents do not say.

PARTY: <current political party>
BIO: <two-sentence biography>
STANCES: <markdown bullet list of positions on key issues, or UNKNOWN>

{documents}`,

	KeyQandA: `You are answering questions about the politician {name}{position_clause}.
Use ONLY the research dossier and sources below. If the answer is not in the
material, reply with exactly SEARCH and nothing else.

DOSSIER:
{dossier}

SOURCES:
{documents}

QUESTION: {question}`,
}

// Per-document and total caps applied when packing source documents into
// a prompt
const (
	MaxCharsPerDocument = 5000
	MaxTotalChars       = 100000
)

// Store holds prompt templates, with optional overrides loaded from a
// YAML file keyed by template name.
type Store struct {
	templates map[string]string
}

// NewStore returns a store with the built-in templates
func NewStore() *Store {
	templates := make(map[string]string, len(defaultTemplates))
	for k, v := range defaultTemplates {
		templates[k] = v
	}
	return &Store{templates: templates}
}

// LoadOverrides merges templates from a YAML file over the defaults.
// Unknown keys are rejected so typos fail loudly.
func (s *Store) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read prompt overrides %s: %w", path, err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse prompt overrides %s: %w", path, err)
	}

	for key, tmpl := range overrides {
		if _, ok := defaultTemplates[key]; !ok {
			return fmt.Errorf("unknown prompt key %q in %s", key, path)
		}
		s.templates[key] = tmpl
	}
	return nil
}

// Render substitutes {placeholder} values into the named template
func (s *Store) Render(key string, values map[string]string) (string, error) {
	tmpl, ok := s.templates[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt key %q", key)
	}

	// {position_clause} reads naturally whether or not a position is known
	if position, ok := values["position"]; ok {
		if strings.TrimSpace(position) != "" {
			values["position_clause"] = ", " + position + ","
		} else {
			values["position_clause"] = ""
		}
	}

	rendered := tmpl
	for name, value := range values {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", value)
	}
	return rendered, nil
}

// PackDocuments numbers and concatenates source documents for prompt use,
// truncating each to MaxCharsPerDocument and stopping once MaxTotalChars is
// reached.
func PackDocuments(docs []string) string {
	var sb strings.Builder
	for i, doc := range docs {
		doc = strings.TrimSpace(doc)
		if doc == "" {
			continue
		}
		if len(doc) > MaxCharsPerDocument {
			doc = doc[:MaxCharsPerDocument]
		}

		entry := fmt.Sprintf("DOCUMENT %d:\n%s\n\n", i+1, doc)
		if sb.Len()+len(entry) > MaxTotalChars {
			break
		}
		sb.WriteString(entry)
	}
	return strings.TrimSpace(sb.String())
}
