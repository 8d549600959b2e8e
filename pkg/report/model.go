package report

import "time"

// SectionKind classifies a report section by topic.
type SectionKind int

const (
	KindUnknown SectionKind = iota
	KindInsights
	KindQuotes
	KindThemes
	KindFrictions
	KindIdeas
)

// WeekDocument is one reporting week's raw markdown plus its metadata.
// Immutable once loaded; identified by its week start date.
type WeekDocument struct {
	WeekStart   time.Time
	WeekEnd     time.Time
	NoteCount   int
	RawMarkdown string
}

// Key returns the canonical identity string for the week.
func (w WeekDocument) Key() string {
	return WeekKey(w.WeekStart)
}

// WeekKey formats a week start date as its identity string.
func WeekKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// RawSection is a heading-delimited block before classification.
type RawSection struct {
	Heading string
	Body    string
}

// Quote is an attributed quotation from a quotes section.
type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution"`
	Org         string `json:"org"`
}

// Card is the shared title/body/mentions shape used for themes,
// frictions and content ideas. Cards without a detectable title
// carry an empty Title, never a missing one. Frictions never
// populate Mentions.
type Card struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Mentions string `json:"mentions"`
}

// ParsedSections holds the typed records extracted from one week
// document. A kind absent from the document is an empty list.
// Item order matches first occurrence in the source markdown.
type ParsedSections struct {
	Insights  []string `json:"insights"`
	Quotes    []Quote  `json:"quotes"`
	Themes    []Card   `json:"themes"`
	Frictions []Card   `json:"frictions"`
	Ideas     []Card   `json:"ideas"`
}

// AggregateView is the merged result of all weeks inside a lookback
// window. Weeks are ordered newest first and the per-kind lists are
// concatenations in that week order, each preserving its week's own
// item order.
type AggregateView struct {
	Weeks      []WeekDocument
	TotalNotes int
	RangeStart time.Time
	RangeEnd   time.Time
	Insights   []string
	Quotes     []Quote
	Themes     []Card
	Frictions  []Card
	Ideas      []Card
}
