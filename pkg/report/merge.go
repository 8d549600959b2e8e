package report

// Merge folds the parsed sections of the given weeks into one
// aggregate view. Weeks must already be ordered newest first; a week
// with no entry in parsed (a document that failed to load or parse)
// is skipped entirely, it does not count as a zero-value week. Lists
// are concatenated in week order with each week's own item order
// preserved; nothing is deduplicated or re-sorted.
func Merge(weeks []WeekDocument, parsed map[string]ParsedSections) AggregateView {
	var view AggregateView
	for _, w := range weeks {
		ps, ok := parsed[w.Key()]
		if !ok {
			continue
		}
		view.Weeks = append(view.Weeks, w)
		view.TotalNotes += w.NoteCount
		view.Insights = append(view.Insights, ps.Insights...)
		view.Quotes = append(view.Quotes, ps.Quotes...)
		view.Themes = append(view.Themes, ps.Themes...)
		view.Frictions = append(view.Frictions, ps.Frictions...)
		view.Ideas = append(view.Ideas, ps.Ideas...)
	}
	if len(view.Weeks) > 0 {
		view.RangeEnd = view.Weeks[0].WeekEnd
		view.RangeStart = view.Weeks[len(view.Weeks)-1].WeekStart
	}
	return view
}
