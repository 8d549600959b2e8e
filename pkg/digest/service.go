package digest

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jj-morpho/granola-digest/pkg/archive"
	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/fetch"
	"github.com/jj-morpho/granola-digest/pkg/report"
)

// Service runs the report pipeline: refresh the local cache from the
// upstream generator, then build aggregate digests over a lookback
// window on demand.
type Service struct {
	Fetcher *fetch.Client
	Repo    *db.Repository
	Archive *archive.Manager // optional
}

// NewService creates a digest service. archiveManager may be nil when
// snapshot archiving is not configured.
func NewService(fetcher *fetch.Client, repo *db.Repository, archiveManager *archive.Manager) *Service {
	return &Service{
		Fetcher: fetcher,
		Repo:    repo,
		Archive: archiveManager,
	}
}

// Refresh fetches the upstream index and every listed week document,
// caching each in the database. A week that fails to fetch is logged
// and skipped; it will simply be absent from digests until a later
// refresh succeeds. Returns the number of weeks stored.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	refs, err := s.Fetcher.FetchIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh failed: %w", err)
	}

	stored := 0
	for _, ref := range refs {
		week, err := s.Fetcher.FetchWeek(ctx, ref)
		if err != nil {
			log.Printf("digest: skipping week %s: %v", report.WeekKey(ref.WeekStart), err)
			continue
		}
		if err := s.Repo.UpsertWeek(*week); err != nil {
			log.Printf("digest: failed to cache week %s: %v", week.Key(), err)
			continue
		}
		stored++
		if s.Archive != nil {
			if err := s.Archive.Snapshot(*week); err != nil {
				log.Printf("digest: archive snapshot for %s failed: %v", week.Key(), err)
			}
		}
	}

	if s.Archive != nil && stored > 0 {
		if err := s.Archive.Commit(fmt.Sprintf("Refresh %d weeks", stored)); err != nil {
			log.Printf("digest: archive commit failed: %v", err)
		}
	}
	return stored, nil
}

// Build aggregates the cached weeks inside the lookback window ending
// at now. Each week parses independently, so the documents are parsed
// in parallel into a map keyed by week start; the merge itself is a
// sequential fold over the fixed newest-first week order, which keeps
// the output independent of parse completion timing. An empty window
// is a valid result, not an error.
func (s *Service) Build(ctx context.Context, lookbackDays int, now time.Time) (report.AggregateView, error) {
	if lookbackDays <= 0 {
		return report.AggregateView{}, fmt.Errorf("lookback days must be positive, got %d", lookbackDays)
	}

	weeks, err := s.Repo.ListWeeks()
	if err != nil {
		return report.AggregateView{}, fmt.Errorf("failed to load cached weeks: %w", err)
	}

	selected := report.FilterWeeks(weeks, lookbackDays, now)

	parsed := make(map[string]report.ParsedSections, len(selected))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, w := range selected {
		wg.Add(1)
		go func(w report.WeekDocument) {
			defer wg.Done()
			ps := report.ParseDocument(w.RawMarkdown)
			mu.Lock()
			parsed[w.Key()] = ps
			mu.Unlock()
		}(w)
	}
	wg.Wait()

	return report.Merge(selected, parsed), nil
}
