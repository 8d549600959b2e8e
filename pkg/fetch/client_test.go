package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"weeks": [
			{"week_start": "2026-08-17", "week_end": "2026-08-23", "note_count": 6, "summary_url": "/weeks/2026-08-17"},
			{"week_start": "2026-08-10", "week_end": "2026-08-16", "summary_url": "/weeks/2026-08-10"},
			{"week_start": "not-a-date", "week_end": "2026-08-09", "summary_url": "/weeks/bad"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	refs, err := client.FetchIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The malformed entry is skipped, not fatal.
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].NoteCount != 6 {
		t.Errorf("note count = %d", refs[0].NoteCount)
	}
	// Missing note_count defaults to zero.
	if refs[1].NoteCount != 0 {
		t.Errorf("note count = %d, want 0", refs[1].NoteCount)
	}
}

func TestFetchIndexServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FetchIndex(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestFetchDocumentPrefersSummaryMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary_markdown": "## 1. Main Themes", "raw_summary": "fallback"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	md, err := client.FetchDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md != "## 1. Main Themes" {
		t.Errorf("markdown = %q", md)
	}
}

func TestFetchDocumentRawSummaryFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"raw_summary": "## 1. Insights"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	md, err := client.FetchDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md != "## 1. Insights" {
		t.Errorf("markdown = %q", md)
	}
}

func TestFetchDocumentEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FetchDocument(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for document with no markdown")
	}
}
