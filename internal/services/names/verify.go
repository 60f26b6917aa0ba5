package names

import (
	"strings"
)

// Surnames common enough that a surname-only match proves nothing
var commonSurnames = []string{
	"garcia", "santos", "reyes", "cruz", "dela cruz",
	"gonzales", "bautista", "lopez",
}

// Words that reinforce a common-surname match on a substantial page
var politicalTerms = []string{
	"politician", "senator", "mayor", "governor", "congressman",
	"congresswoman", "representative", "official", "elected",
	"public servant",
}

// Pages with fewer words than this are too thin to reinforce a
// common-surname match
const substantialPageWords = 100

// VerifyMatch reports whether a reference page (title plus extract) is
// plausibly about the named person. The full name as a substring, or an
// uncommon surname, is evidence enough on its own. A very common surname
// needs reinforcement: the page must be substantial and either mention
// the first initial with the surname or read as political.
func VerifyMatch(pageTitle, pageText, name, position string) bool {
	haystack := strings.ToLower(pageTitle + " " + pageText)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || haystack == "" {
		return false
	}

	tokens := strings.Fields(name)
	surname := tokens[len(tokens)-1]

	// A specific position together with the surname is a strong signal
	if len(position) > 3 && strings.Contains(haystack, strings.ToLower(position)) &&
		strings.Contains(haystack, surname) {
		return true
	}

	if strings.Contains(haystack, name) {
		return true
	}

	if !strings.Contains(haystack, surname) {
		return false
	}
	if !isCommonSurname(surname) {
		return true
	}

	if len(strings.Fields(haystack)) > substantialPageWords {
		if len(tokens) > 1 && strings.Contains(haystack, tokens[0][:1]+". "+surname) {
			return true
		}
		for _, term := range politicalTerms {
			if strings.Contains(haystack, term) {
				return true
			}
		}
	}
	return false
}

func isCommonSurname(surname string) bool {
	for _, common := range commonSurnames {
		if surname == common {
			return true
		}
	}
	return false
}
