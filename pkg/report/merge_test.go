package report

import (
	"reflect"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testWeeks() []WeekDocument {
	return []WeekDocument{
		{WeekStart: day("2026-08-03"), WeekEnd: day("2026-08-09"), NoteCount: 3},
		{WeekStart: day("2026-08-17"), WeekEnd: day("2026-08-23"), NoteCount: 6},
		{WeekStart: day("2026-08-10"), WeekEnd: day("2026-08-16"), NoteCount: 4},
	}
}

func TestFilterWeeks(t *testing.T) {
	now := day("2026-08-25")
	selected := FilterWeeks(testWeeks(), 7, now)

	// cutoff is 2026-08-18: only the newest week ends on or after it.
	if len(selected) != 1 {
		t.Fatalf("expected 1 week, got %d", len(selected))
	}
	if selected[0].NoteCount != 6 {
		t.Errorf("note count = %d", selected[0].NoteCount)
	}
}

func TestFilterWeeksInclusiveCutoff(t *testing.T) {
	now := day("2026-08-23")
	selected := FilterWeeks(testWeeks(), 7, now)

	// cutoff 2026-08-16 equals the middle week's end date; inclusive.
	if len(selected) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(selected))
	}
}

func TestFilterWeeksNewestFirst(t *testing.T) {
	selected := FilterWeeks(testWeeks(), 28, day("2026-08-25"))
	if len(selected) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(selected))
	}
	for i := 1; i < len(selected); i++ {
		if selected[i].WeekStart.After(selected[i-1].WeekStart) {
			t.Fatalf("weeks not newest-first: %v before %v", selected[i-1].WeekStart, selected[i].WeekStart)
		}
	}
}

func TestFilterWeeksEmptyResult(t *testing.T) {
	selected := FilterWeeks(testWeeks(), 7, day("2026-12-01"))
	if len(selected) != 0 {
		t.Errorf("expected no weeks, got %d", len(selected))
	}
}

func TestMerge(t *testing.T) {
	weeks := FilterWeeks(testWeeks(), 28, day("2026-08-25"))
	parsed := map[string]ParsedSections{
		"2026-08-17": {Insights: []string{"newest"}, Themes: []Card{{Title: "N"}}},
		"2026-08-10": {Insights: []string{"middle"}, Themes: []Card{{Title: "M"}}},
		"2026-08-03": {Insights: []string{"oldest"}},
	}

	view := Merge(weeks, parsed)

	if view.TotalNotes != 13 {
		t.Errorf("total notes = %d, want 13", view.TotalNotes)
	}
	if !reflect.DeepEqual(view.Insights, []string{"newest", "middle", "oldest"}) {
		t.Errorf("insights = %v", view.Insights)
	}
	if view.RangeStart != day("2026-08-03") {
		t.Errorf("range start = %v", view.RangeStart)
	}
	if view.RangeEnd != day("2026-08-23") {
		t.Errorf("range end = %v", view.RangeEnd)
	}
}

func TestMergeSkipsWeeksWithoutParsedDocument(t *testing.T) {
	weeks := FilterWeeks(testWeeks(), 28, day("2026-08-25"))
	parsed := map[string]ParsedSections{
		"2026-08-17": {Insights: []string{"newest"}},
		// middle week failed to load; no entry at all
		"2026-08-03": {Insights: []string{"oldest"}},
	}

	view := Merge(weeks, parsed)

	if len(view.Weeks) != 2 {
		t.Fatalf("expected 2 included weeks, got %d", len(view.Weeks))
	}
	// The failed week's note count must not contribute.
	if view.TotalNotes != 9 {
		t.Errorf("total notes = %d, want 9", view.TotalNotes)
	}
	if !reflect.DeepEqual(view.Insights, []string{"newest", "oldest"}) {
		t.Errorf("insights = %v", view.Insights)
	}
}

func TestMergeEmptyWindow(t *testing.T) {
	view := Merge(nil, map[string]ParsedSections{})
	if view.TotalNotes != 0 || len(view.Weeks) != 0 {
		t.Errorf("expected empty view, got %+v", view)
	}
	if !view.RangeStart.IsZero() || !view.RangeEnd.IsZero() {
		t.Errorf("expected zero range, got %v..%v", view.RangeStart, view.RangeEnd)
	}
}
