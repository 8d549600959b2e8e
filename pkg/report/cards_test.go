package report

import "testing"

func TestExtractCards(t *testing.T) {
	body := `- **Onboarding friction** — New users drop off early. Mentioned by: Dana, Lee.`
	cards := ExtractCards(body)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	c := cards[0]
	if c.Title != "Onboarding friction" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Body != "New users drop off early" {
		t.Errorf("body = %q", c.Body)
	}
	if c.Mentions != "Dana, Lee" {
		t.Errorf("mentions = %q", c.Mentions)
	}
}

func TestExtractCardsSeparatorVariants(t *testing.T) {
	body := "- **A** — one\n- **B** -- two\n- **C** - three\n- **D**: four\n"
	cards := ExtractCards(body)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	wantBodies := []string{"one", "two", "three", "four"}
	for i, want := range wantBodies {
		if cards[i].Body != want {
			t.Errorf("card %d body = %q, want %q", i, cards[i].Body, want)
		}
	}
}

func TestExtractCardsWithoutMentions(t *testing.T) {
	cards := ExtractCards(`- **Changelog digest** — Turn release notes into a monthly roundup.`)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Body != "Turn release notes into a monthly roundup" {
		t.Errorf("body = %q", cards[0].Body)
	}
	if cards[0].Mentions != "" {
		t.Errorf("mentions = %q, want empty", cards[0].Mentions)
	}
}

func TestExtractCardsTitlelessFallback(t *testing.T) {
	body := "- a long enough bullet without any bold title\n- short\n"
	cards := ExtractCards(body)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Title != "" {
		t.Errorf("title = %q, want empty", cards[0].Title)
	}
	if cards[0].Body != "a long enough bullet without any bold title" {
		t.Errorf("body = %q", cards[0].Body)
	}
}

func TestExtractCardsEmptyBody(t *testing.T) {
	if cards := ExtractCards(""); len(cards) != 0 {
		t.Errorf("expected no cards, got %d", len(cards))
	}
}

func TestExtractFrictionCardsKeepsWrappedParagraphs(t *testing.T) {
	body := "- **Pricing page** — Two prospects misread the per-seat tier.\n" +
		"The follow-up call cleared it up but cost a week.\n" +
		"- **Sandbox limits** — Trial accounts hit the API cap on day one.\n"
	cards := ExtractFrictionCards(body)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Title != "Pricing page" {
		t.Errorf("title = %q", cards[0].Title)
	}
	// The wrapped second line belongs to the first card, not a new one.
	if want := "Two prospects misread the per-seat tier.\nThe follow-up call cleared it up but cost a week"; cards[0].Body != want {
		t.Errorf("body = %q, want %q", cards[0].Body, want)
	}
	if cards[1].Title != "Sandbox limits" {
		t.Errorf("title = %q", cards[1].Title)
	}
}

func TestExtractFrictionCardsNeverPopulateMentions(t *testing.T) {
	cards := ExtractFrictionCards(`- **Docs gap** — SSO setup is undocumented. Mentioned by: Sam.`)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Mentions != "" {
		t.Errorf("mentions = %q, want empty", cards[0].Mentions)
	}
	// The clause stays in the body for this variant.
	if want := "SSO setup is undocumented. Mentioned by: Sam"; cards[0].Body != want {
		t.Errorf("body = %q, want %q", cards[0].Body, want)
	}
}

func TestExtractFrictionCardsPlainBulletStaysAttached(t *testing.T) {
	body := "- **Known issue** — Exports time out.\n- a plain follow-up bullet with no bold title\n"
	cards := ExtractFrictionCards(body)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].Title != "Known issue" {
		t.Errorf("title = %q", cards[0].Title)
	}
}
