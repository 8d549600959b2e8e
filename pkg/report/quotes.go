package report

import (
	"regexp"
	"strings"
)

// Quote lines look like:
//
//	> "Ship weekly." — Dana, Acme Corp
//
// The separator between the quoted span and the attribution clause
// may be an em dash, a double hyphen or a single hyphen. Lines not
// matching the shape are ignored.
var quoteLineRe = regexp.MustCompile(`(?m)^>\s*"([^"]+)"\s*(?:—|--|-)\s*(.+?)\s*$`)

// ExtractQuotes scans the body of a quotes section and returns all
// attributed quotations in document order. Malformed lines are
// skipped; extraction continues with the rest of the text.
func ExtractQuotes(body string) []Quote {
	var quotes []Quote
	for _, m := range quoteLineRe.FindAllStringSubmatch(body, -1) {
		person, org := parseAttribution(m[2])
		quotes = append(quotes, Quote{
			Text:        m[1],
			Attribution: person,
			Org:         org,
		})
	}
	return quotes
}

// parseAttribution splits an attribution clause into person and
// organization. A clause ending in "team" or "team member" keeps the
// full clause as the displayed attribution with the leading text as
// the org. The comma split runs unconditionally afterwards and
// overrides the team-suffix result when both match; keep that order,
// downstream consumers rely on it.
func parseAttribution(clause string) (person, org string) {
	clause = strings.TrimSpace(clause)
	person = clause

	lower := strings.ToLower(clause)
	if strings.HasSuffix(lower, "team member") {
		org = strings.TrimSpace(clause[:len(clause)-len("team member")])
	} else if strings.HasSuffix(lower, "team") {
		org = strings.TrimSpace(clause[:len(clause)-len("team")])
	}

	if i := strings.Index(clause, ","); i >= 0 {
		person = strings.TrimSpace(clause[:i])
		org = strings.TrimSpace(clause[i+1:])
	}
	return person, org
}
