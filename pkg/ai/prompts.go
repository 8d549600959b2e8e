package ai

import (
	"fmt"
	"strings"

	"github.com/jj-morpho/granola-digest/pkg/report"
)

// NarrativePrompt builds a prompt asking the model to turn an
// aggregate digest into a short narrative summary. Only already
// extracted records go into the prompt, never the raw markdown.
func NarrativePrompt(view report.AggregateView, lookbackDays int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `You are an assistant summarizing weekly meeting reports.

Write a short narrative (3-5 sentences) of the last %d days based on the
records below. Mention the overall activity level (%d meetings across %d
weeks), the dominant themes, and any friction worth leadership attention.
Plain prose, no headings, no bullet points.

`, lookbackDays, view.TotalNotes, len(view.Weeks))

	if len(view.Insights) > 0 {
		sb.WriteString("Insights:\n")
		for _, in := range view.Insights {
			fmt.Fprintf(&sb, "- %s\n", in)
		}
	}
	if len(view.Themes) > 0 {
		sb.WriteString("Themes:\n")
		for _, c := range view.Themes {
			writePromptCard(&sb, c)
		}
	}
	if len(view.Frictions) > 0 {
		sb.WriteString("Friction points:\n")
		for _, c := range view.Frictions {
			writePromptCard(&sb, c)
		}
	}
	return sb.String()
}

func writePromptCard(sb *strings.Builder, c report.Card) {
	if c.Title != "" {
		fmt.Fprintf(sb, "- %s: %s\n", c.Title, c.Body)
		return
	}
	fmt.Fprintf(sb, "- %s\n", c.Body)
}
