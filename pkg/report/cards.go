package report

import (
	"regexp"
	"strings"
)

// Bullet cards look like:
//
//	- **Onboarding friction** — New users drop off early. Mentioned by: Dana, Lee.
//
// with the same dash alternatives as quotes, plus a colon. The
// "Mentioned by" clause and the title are both optional.
var (
	bulletRe       = regexp.MustCompile(`(?m)^- `)
	boldBulletRe   = regexp.MustCompile(`(?m)^- \*\*`)
	boldTitleRe    = regexp.MustCompile(`(?s)^\*\*(.+?)\*\*\s*(?:—|--|-|:)\s*(.*)$`)
	mentionedByRe = regexp.MustCompile(`(?is)\s*Mentioned by:\s*(.+?)\.?\s*$`)
)

// Fragments at or below this length with no bold title are dropped
// as noise rather than turned into titleless cards.
const minFragmentLen = 10

// ExtractCards extracts themes or content-idea cards from a section
// body. The body is split at every line-leading "- " bullet marker;
// fragments that fail the bold-title pattern but are long enough
// still become titleless cards, so malformed bullets degrade instead
// of disappearing.
func ExtractCards(body string) []Card {
	var cards []Card
	for _, frag := range bulletRe.Split(body, -1) {
		if card, ok := parseFragment(frag, true); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// ExtractFrictionCards is the frictions variant: the body is split
// only before bullets that open with a bold title, so paragraphs
// wrapping across lines stay attached to the preceding fragment.
// Friction cards never carry mentions.
func ExtractFrictionCards(body string) []Card {
	var cards []Card
	for _, frag := range splitBeforeBoldBullets(body) {
		if card, ok := parseFragment(frag, false); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// splitBeforeBoldBullets cuts the body at each "- **" bullet start.
// RE2 has no lookahead, so the match positions are used as cut
// points and the markers stay attached to their fragments.
func splitBeforeBoldBullets(body string) []string {
	starts := boldBulletRe.FindAllStringIndex(body, -1)
	if len(starts) == 0 {
		return []string{body}
	}
	var frags []string
	prev := 0
	for _, loc := range starts {
		frags = append(frags, body[prev:loc[0]])
		prev = loc[0]
	}
	return append(frags, body[prev:])
}

// parseFragment turns one bullet fragment into a card. Fragments
// shorter than minFragmentLen with no recognizable title are dropped
// as noise.
func parseFragment(frag string, withMentions bool) (Card, bool) {
	frag = strings.TrimSpace(frag)
	if f, ok := strings.CutPrefix(frag, "- "); ok {
		frag = f
	} else {
		frag = strings.TrimPrefix(frag, "-")
	}
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return Card{}, false
	}

	m := boldTitleRe.FindStringSubmatch(frag)
	if m == nil {
		if len(frag) > minFragmentLen {
			return Card{Body: frag}, true
		}
		return Card{}, false
	}

	title := m[1]
	rest := m[2]
	mentions := ""
	if withMentions {
		if loc := mentionedByRe.FindStringSubmatchIndex(rest); loc != nil {
			mentions = strings.TrimSpace(rest[loc[2]:loc[3]])
			rest = rest[:loc[0]]
		}
	}

	body := strings.TrimSuffix(strings.TrimSpace(rest), ".")
	return Card{Title: title, Body: body, Mentions: mentions}, true
}
