package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Containers likely to hold the main article body, tried in order
var contentSelectors = []string{
	"article", ".article", ".content", ".post", "main", "#main", "#content",
}

const minParagraphChars = 100

// ExtractReadableText pulls readable text from a parsed page in three
// tiers: a known content container, then long paragraphs, then the whole
// body text. Script, style, and nav chrome are stripped first.
func ExtractReadableText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := normalizeWhitespace(sel.Text()); text != "" {
			return text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeWhitespace(sel.Text())
		if len(text) > minParagraphChars {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}

	return normalizeWhitespace(doc.Find("body").Text())
}

// WordCount counts whitespace-separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
