package digest

import (
	"fmt"
	"strings"

	"github.com/jj-morpho/granola-digest/pkg/report"
)

// FormatText renders an aggregate view as a plain-text digest for
// chat delivery. Chat messages render basic markdown, so section
// labels use bold markers.
func FormatText(view report.AggregateView, lookbackDays int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Weekly digest** (last %d days)\n", lookbackDays)
	if len(view.Weeks) == 0 {
		sb.WriteString("No data for this period.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s to %s, %d weeks, %d meetings\n",
		view.RangeStart.Format("Jan 2"), view.RangeEnd.Format("Jan 2, 2006"),
		len(view.Weeks), view.TotalNotes)

	if len(view.Insights) > 0 {
		sb.WriteString("\n**Insights**\n")
		for _, in := range view.Insights {
			fmt.Fprintf(&sb, "- %s\n", in)
		}
	}
	if len(view.Themes) > 0 {
		sb.WriteString("\n**Themes**\n")
		for _, c := range view.Themes {
			writeCard(&sb, c)
		}
	}
	if len(view.Quotes) > 0 {
		sb.WriteString("\n**Quotes**\n")
		for _, q := range view.Quotes {
			line := fmt.Sprintf("- \"%s\" — %s", q.Text, q.Attribution)
			if q.Org != "" {
				line += " (" + q.Org + ")"
			}
			sb.WriteString(line + "\n")
		}
	}
	if len(view.Frictions) > 0 {
		sb.WriteString("\n**Friction points**\n")
		for _, c := range view.Frictions {
			writeCard(&sb, c)
		}
	}
	if len(view.Ideas) > 0 {
		sb.WriteString("\n**Content ideas**\n")
		for _, c := range view.Ideas {
			writeCard(&sb, c)
		}
	}
	return sb.String()
}

func writeCard(sb *strings.Builder, c report.Card) {
	switch {
	case c.Title == "":
		fmt.Fprintf(sb, "- %s\n", c.Body)
	case c.Mentions != "":
		fmt.Fprintf(sb, "- %s: %s (mentioned by %s)\n", c.Title, c.Body, c.Mentions)
	default:
		fmt.Fprintf(sb, "- %s: %s\n", c.Title, c.Body)
	}
}
