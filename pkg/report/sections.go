package report

import (
	"regexp"
	"strings"
)

// Section headings look like "## 3. Main Themes". The number is not
// validated for uniqueness or sequence; it is simply discarded.
var headingRe = regexp.MustCompile(`(?m)^##\s*\d+\.\s*(.*)$`)

// SplitSections splits raw markdown into heading-delimited sections.
// Text before the first numbered heading is discarded, as is any
// section whose heading text is empty after trimming.
func SplitSections(raw string) []RawSection {
	matches := headingRe.FindAllStringSubmatchIndex(raw, -1)
	var sections []RawSection
	for i, m := range matches {
		heading := strings.TrimSpace(raw[m[2]:m[3]])
		if heading == "" {
			continue
		}
		bodyStart := m[1]
		bodyEnd := len(raw)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, RawSection{
			Heading: heading,
			Body:    strings.TrimSpace(raw[bodyStart:bodyEnd]),
		})
	}
	return sections
}

// Classify maps a section heading to its topic kind. The keyword
// groups are tested in a fixed precedence order against the
// lower-cased heading; the first containing match wins. Headings
// matching no group are Unknown and dropped from further processing.
func Classify(heading string) SectionKind {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "executive summary") || strings.Contains(h, "insight"):
		return KindInsights
	case strings.Contains(h, "notable quotes") || strings.Contains(h, "source"):
		return KindQuotes
	case strings.Contains(h, "main themes") || strings.Contains(h, "theme"):
		return KindThemes
	case strings.Contains(h, "misunderstanding") || strings.Contains(h, "friction"):
		return KindFrictions
	case strings.Contains(h, "content idea"):
		return KindIdeas
	default:
		return KindUnknown
	}
}
