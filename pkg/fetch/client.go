package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jj-morpho/granola-digest/pkg/report"
)

// WeekRef is one entry of the upstream document index: the week's
// date range, its meeting count and where to fetch its summary.
type WeekRef struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	NoteCount  int
	SummaryURL string
}

// Client talks to the upstream summary generator's HTTP API.
type Client struct {
	httpClient *http.Client
	indexURL   string
}

// NewClient creates a client for the given index URL.
func NewClient(indexURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		indexURL:   indexURL,
	}
}

type indexResponse struct {
	Weeks []weekDescriptor `json:"weeks"`
}

// note_count is optional upstream and defaults to zero.
type weekDescriptor struct {
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
	NoteCount  int    `json:"note_count"`
	SummaryURL string `json:"summary_url"`
}

type documentResponse struct {
	SummaryMarkdown string `json:"summary_markdown"`
	RawSummary      string `json:"raw_summary"`
}

// FetchIndex downloads and decodes the week index. Entries with an
// unparseable date are skipped rather than failing the whole index.
func (c *Client) FetchIndex(ctx context.Context) ([]WeekRef, error) {
	body, err := c.get(ctx, c.indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index: %w", err)
	}

	var idx indexResponse
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}

	var refs []WeekRef
	for _, d := range idx.Weeks {
		start, err := time.Parse("2006-01-02", d.WeekStart)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", d.WeekEnd)
		if err != nil {
			continue
		}
		refs = append(refs, WeekRef{
			WeekStart:  start,
			WeekEnd:    end,
			NoteCount:  d.NoteCount,
			SummaryURL: d.SummaryURL,
		})
	}
	return refs, nil
}

// FetchDocument downloads one week's summary document and returns its
// raw markdown. summary_markdown is preferred, raw_summary is the
// fallback; a document carrying neither is an error.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}

	var doc documentResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to decode document: %w", err)
	}

	if doc.SummaryMarkdown != "" {
		return doc.SummaryMarkdown, nil
	}
	if doc.RawSummary != "" {
		return doc.RawSummary, nil
	}
	return "", fmt.Errorf("document at %s has no summary markdown", url)
}

// FetchWeek downloads one indexed week as a full WeekDocument.
func (c *Client) FetchWeek(ctx context.Context, ref WeekRef) (*report.WeekDocument, error) {
	markdown, err := c.FetchDocument(ctx, ref.SummaryURL)
	if err != nil {
		return nil, err
	}
	return &report.WeekDocument{
		WeekStart:   ref.WeekStart,
		WeekEnd:     ref.WeekEnd,
		NoteCount:   ref.NoteCount,
		RawMarkdown: markdown,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
