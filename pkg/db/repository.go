package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jj-morpho/granola-digest/pkg/report"
)

// Repository handles data access
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// DeliveryLog represents a row in the deliveries table
type DeliveryLog struct {
	ID           int64
	Channel      string
	LookbackDays int
	WeekCount    int
	CreatedAt    time.Time
}

const dateLayout = "2006-01-02"

// UpsertWeek stores or refreshes one cached week document.
func (r *Repository) UpsertWeek(w report.WeekDocument) error {
	query := `INSERT INTO weeks (week_start, week_end, note_count, raw_markdown, fetched_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(week_start) DO UPDATE SET
			week_end = excluded.week_end,
			note_count = excluded.note_count,
			raw_markdown = excluded.raw_markdown,
			fetched_at = CURRENT_TIMESTAMP`
	_, err := r.db.Exec(query, w.Key(), w.WeekEnd.Format(dateLayout), w.NoteCount, w.RawMarkdown)
	if err != nil {
		return fmt.Errorf("failed to upsert week %s: %w", w.Key(), err)
	}
	return nil
}

// ListWeeks returns all cached week documents, newest week first.
func (r *Repository) ListWeeks() ([]report.WeekDocument, error) {
	query := `SELECT week_start, week_end, note_count, raw_markdown FROM weeks ORDER BY week_start DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	var weeks []report.WeekDocument
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// GetWeek returns one cached week by its start date key, or nil when
// the week is not cached.
func (r *Repository) GetWeek(weekKey string) (*report.WeekDocument, error) {
	query := `SELECT week_start, week_end, note_count, raw_markdown FROM weeks WHERE week_start = ?`
	row := r.db.QueryRow(query, weekKey)

	var startStr, endStr, markdown string
	var noteCount int
	err := row.Scan(&startStr, &endStr, &noteCount, &markdown)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get week %s: %w", weekKey, err)
	}
	w, err := weekFromRow(startStr, endStr, noteCount, markdown)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// LogDelivery records a digest delivery to a chat channel.
func (r *Repository) LogDelivery(channel string, lookbackDays, weekCount int) error {
	query := `INSERT INTO deliveries (channel, lookback_days, week_count) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, channel, lookbackDays, weekCount)
	if err != nil {
		return fmt.Errorf("failed to log delivery: %w", err)
	}
	return nil
}

// GetLatestDelivery returns the most recent delivery log, or nil when
// nothing has been delivered yet.
func (r *Repository) GetLatestDelivery() (*DeliveryLog, error) {
	query := `SELECT id, channel, lookback_days, week_count, created_at FROM deliveries ORDER BY created_at DESC, id DESC LIMIT 1`
	row := r.db.QueryRow(query)

	var log DeliveryLog
	err := row.Scan(&log.ID, &log.Channel, &log.LookbackDays, &log.WeekCount, &log.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest delivery: %w", err)
	}
	return &log, nil
}

func scanWeek(rows *sql.Rows) (report.WeekDocument, error) {
	var startStr, endStr, markdown string
	var noteCount int
	if err := rows.Scan(&startStr, &endStr, &noteCount, &markdown); err != nil {
		return report.WeekDocument{}, fmt.Errorf("failed to scan week: %w", err)
	}
	return weekFromRow(startStr, endStr, noteCount, markdown)
}

func weekFromRow(startStr, endStr string, noteCount int, markdown string) (report.WeekDocument, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return report.WeekDocument{}, fmt.Errorf("bad week_start %q: %w", startStr, err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return report.WeekDocument{}, fmt.Errorf("bad week_end %q: %w", endStr, err)
	}
	return report.WeekDocument{
		WeekStart:   start,
		WeekEnd:     end,
		NoteCount:   noteCount,
		RawMarkdown: markdown,
	}, nil
}
