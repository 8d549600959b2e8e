package report

import (
	"regexp"
	"strings"
)

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// ParseDocument turns one week's raw markdown into its typed
// sections. Unknown sections contribute nothing; several sections of
// the same kind accumulate in document order. Parsing never fails on
// malformed input, it just yields fewer records.
func ParseDocument(raw string) ParsedSections {
	var ps ParsedSections
	for _, sec := range SplitSections(raw) {
		switch Classify(sec.Heading) {
		case KindInsights:
			ps.Insights = append(ps.Insights, splitParagraphs(sec.Body)...)
		case KindQuotes:
			ps.Quotes = append(ps.Quotes, ExtractQuotes(sec.Body)...)
		case KindThemes:
			ps.Themes = append(ps.Themes, ExtractCards(sec.Body)...)
		case KindFrictions:
			ps.Frictions = append(ps.Frictions, ExtractFrictionCards(sec.Body)...)
		case KindIdeas:
			ps.Ideas = append(ps.Ideas, ExtractCards(sec.Body)...)
		}
	}
	return ps
}

// splitParagraphs splits an insights body on blank lines, one insight
// per non-empty trimmed paragraph.
func splitParagraphs(body string) []string {
	var out []string
	for _, p := range paragraphSplitRe.Split(body, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
