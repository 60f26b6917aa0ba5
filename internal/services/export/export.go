package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Exporter renders a research dossier to markdown, HTML, or PDF
type Exporter struct {
	markdown goldmark.Markdown
	logger   arbor.ILogger
}

// NewExporter creates a new dossier exporter
func NewExporter(logger arbor.ILogger) *Exporter {
	return &Exporter{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		logger: logger,
	}
}

// Markdown renders the dossier as a markdown document
func (e *Exporter) Markdown(politician *models.Politician, result *models.ResearchResult) string {
	var sb strings.Builder

	sb.WriteString("# " + politician.Name + "\n\n")
	if result.Position != "" {
		sb.WriteString("*Position researched: " + result.Position + "*\n\n")
	}
	if politician.Party != "" {
		sb.WriteString("**Party:** " + politician.Party + "\n\n")
	}
	if politician.Bio != "" {
		sb.WriteString(politician.Bio + "\n\n")
	}

	sections := []struct {
		title string
		body  string
	}{
		{"Summary", result.Summary},
		{"Background", result.Background},
		{"Accomplishments", result.Accomplishments},
		{"Criticisms", result.Criticisms},
	}
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		sb.WriteString("## " + section.title + "\n\n" + section.body + "\n\n")
	}

	if politician.Issues != "" {
		sb.WriteString("## Positions on Issues\n\n" + politician.Issues + "\n\n")
	}

	if len(result.Sources) > 0 {
		sb.WriteString("## Sources\n\n")
		for _, source := range result.Sources {
			title := source.Title
			if title == "" {
				title = source.URL
			}
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", title, source.URL))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("*Generated %s*\n", result.CreatedAt.Format("2 January 2006")))
	return sb.String()
}

// HTML renders the dossier as an HTML document
func (e *Exporter) HTML(politician *models.Politician, result *models.ResearchResult) (string, error) {
	var body bytes.Buffer
	if err := e.markdown.Convert([]byte(e.Markdown(politician, result)), &body); err != nil {
		return "", fmt.Errorf("failed to render dossier HTML: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + politician.Name + "</title>\n")
	sb.WriteString("<style>body{font-family:Georgia,serif;max-width:48em;margin:2em auto;line-height:1.5;padding:0 1em}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.Write(body.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

// PDF renders the dossier as a PDF document
func (e *Exporter) PDF(politician *models.Politician, result *models.ResearchResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	writeHeading := func(text string, size float64) {
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size/2, text, "", "L", false)
		pdf.Ln(2)
	}
	writeBody := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, text, "", "L", false)
		pdf.Ln(4)
	}

	writeHeading(politician.Name, 20)
	if result.Position != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 5.5, "Position researched: "+result.Position, "", "L", false)
		pdf.Ln(4)
	}
	if politician.Party != "" {
		writeBody("Party: " + politician.Party)
	}

	sections := []struct {
		title string
		body  string
	}{
		{"Summary", result.Summary},
		{"Background", result.Background},
		{"Accomplishments", result.Accomplishments},
		{"Criticisms", result.Criticisms},
		{"Positions on Issues", politician.Issues},
	}
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		writeHeading(section.title, 14)
		writeBody(section.body)
	}

	if len(result.Sources) > 0 {
		writeHeading("Sources", 14)
		pdf.SetFont("Helvetica", "", 9)
		for _, source := range result.Sources {
			pdf.MultiCell(0, 4.5, source.URL, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render dossier PDF: %w", err)
	}

	e.logger.Debug().
		Str("name", politician.Name).
		Int("bytes", buf.Len()).
		Msg("Dossier PDF generated")
	return buf.Bytes(), nil
}
