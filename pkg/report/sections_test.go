package report

import "testing"

const sampleReport = `Generated by the weekly summarizer.

## 1. Executive Summary

The team shipped the new onboarding flow.

Support volume dropped for the second week running.

## 2. Notable Quotes

> "Ship weekly." — Dana, Acme Corp

## 3. Main Themes

- **Onboarding friction** — New users drop off early. Mentioned by: Dana, Lee.

## 4. Misunderstandings & Friction Points

- **Pricing page** — Two prospects misread the per-seat tier.

## 5. Content Ideas

- **Changelog digest** — Turn release notes into a monthly roundup.
`

func TestSplitSections(t *testing.T) {
	sections := SplitSections(sampleReport)
	if len(sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(sections))
	}
	if sections[0].Heading != "Executive Summary" {
		t.Errorf("heading = %q", sections[0].Heading)
	}
	if sections[1].Body != `> "Ship weekly." — Dana, Acme Corp` {
		t.Errorf("body = %q", sections[1].Body)
	}
}

func TestSplitSectionsDiscardsPreamble(t *testing.T) {
	sections := SplitSections("intro text with no heading\n\n## 1. Themes\n- **A** — body text\n")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "Themes" {
		t.Errorf("heading = %q", sections[0].Heading)
	}
}

func TestSplitSectionsDropsEmptyHeading(t *testing.T) {
	sections := SplitSections("## 1.\nbody under an empty heading\n## 2. Insights\nsomething\n")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "Insights" {
		t.Errorf("heading = %q", sections[0].Heading)
	}
}

func TestSplitSectionsEmptyInput(t *testing.T) {
	if sections := SplitSections(""); len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		heading string
		want    SectionKind
	}{
		{"Executive Summary", KindInsights},
		{"Key Insights", KindInsights},
		{"Notable Quotes", KindQuotes},
		{"Sources", KindQuotes},
		{"Main Themes", KindThemes},
		{"Recurring Theme Watch", KindThemes},
		{"Misunderstandings & Friction Points", KindFrictions},
		{"Friction Log", KindFrictions},
		{"Content Ideas", KindIdeas},
		{"Random Notes", KindUnknown},
		{"", KindUnknown},
	}
	for _, c := range cases {
		if got := Classify(c.heading); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.heading, got, c.want)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// "Theme Insights" contains keywords from two groups; the
	// insights group is tested first and wins.
	if got := Classify("Theme Insights"); got != KindInsights {
		t.Errorf("expected insights to win precedence, got %v", got)
	}
}
