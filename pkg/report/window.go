package report

import (
	"sort"
	"time"
)

// FilterWeeks selects the weeks whose end date falls inside the
// lookback window ending at now. A week counts as current when any
// part of it is inside the window, so the comparison is against
// weekEnd, inclusive. The result is ordered newest week start first.
// An empty result is valid, not an error.
func FilterWeeks(weeks []WeekDocument, lookbackDays int, now time.Time) []WeekDocument {
	cutoff := now.AddDate(0, 0, -lookbackDays)
	var selected []WeekDocument
	for _, w := range weeks {
		if !w.WeekEnd.Before(cutoff) {
			selected = append(selected, w)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].WeekStart.After(selected[j].WeekStart)
	})
	return selected
}
