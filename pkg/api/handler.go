package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jj-morpho/granola-digest/pkg/ai"
	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/digest"
	"github.com/jj-morpho/granola-digest/pkg/report"
)

// DefaultLookbackDays is used when the request carries no days
// parameter. 7 and 28 are the dashboard's window presets, but any
// positive value is accepted.
const DefaultLookbackDays = 7

// Handler holds dependencies for API handlers
type Handler struct {
	Digest *digest.Service
	Repo   *db.Repository
	AI     ai.Generator
}

const dateLayout = "2006-01-02"

type weekInfo struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	NoteCount int    `json:"note_count"`
}

type digestResponse struct {
	LookbackDays int            `json:"lookback_days"`
	Weeks        []weekInfo     `json:"weeks"`
	TotalNotes   int            `json:"total_notes"`
	RangeStart   string         `json:"range_start,omitempty"`
	RangeEnd     string         `json:"range_end,omitempty"`
	Insights     []string       `json:"insights"`
	Quotes       []report.Quote `json:"quotes"`
	Themes       []report.Card  `json:"themes"`
	Frictions    []report.Card  `json:"frictions"`
	Ideas        []report.Card  `json:"ideas"`
}

// HandleGetDigest handles GET /digest?days=N
func (h *Handler) HandleGetDigest(w http.ResponseWriter, r *http.Request) {
	days, ok := lookbackDays(w, r)
	if !ok {
		return
	}
	view, err := h.Digest.Build(r.Context(), days, time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build digest: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toDigestResponse(view, days))
}

// HandleGetDigestText handles GET /digest/text?days=N
func (h *Handler) HandleGetDigestText(w http.ResponseWriter, r *http.Request) {
	days, ok := lookbackDays(w, r)
	if !ok {
		return
	}
	view, err := h.Digest.Build(r.Context(), days, time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build digest: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, digest.FormatText(view, days))
}

// HandleDigestNarrative handles POST /digest/narrative
func (h *Handler) HandleDigestNarrative(w http.ResponseWriter, r *http.Request) {
	if h.AI == nil {
		http.Error(w, "no AI generator configured", http.StatusServiceUnavailable)
		return
	}
	days, ok := lookbackDays(w, r)
	if !ok {
		return
	}
	view, err := h.Digest.Build(r.Context(), days, time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build digest: %v", err), http.StatusInternalServerError)
		return
	}

	prompt := ai.NarrativePrompt(view, days)
	narrative, err := h.AI.GenerateText(r.Context(), prompt)
	if err != nil {
		http.Error(w, fmt.Sprintf("AI generation failed: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lookback_days": days,
		"narrative":     narrative,
	})
}

// HandleListWeeks handles GET /weeks
func (h *Handler) HandleListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.Repo.ListWeeks()
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list weeks: %v", err), http.StatusInternalServerError)
		return
	}
	infos := make([]weekInfo, 0, len(weeks))
	for _, wk := range weeks {
		infos = append(infos, weekInfo{
			WeekStart: wk.Key(),
			WeekEnd:   wk.WeekEnd.Format(dateLayout),
			NoteCount: wk.NoteCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"weeks": infos})
}

// HandleRefresh handles POST /refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	stored, err := h.Digest.Refresh(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("refresh failed: %v", err), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"weeks_stored": stored})
}

func lookbackDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return DefaultLookbackDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		http.Error(w, "days must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return days, true
}

func toDigestResponse(view report.AggregateView, days int) digestResponse {
	resp := digestResponse{
		LookbackDays: days,
		Weeks:        make([]weekInfo, 0, len(view.Weeks)),
		TotalNotes:   view.TotalNotes,
		Insights:     view.Insights,
		Quotes:       view.Quotes,
		Themes:       view.Themes,
		Frictions:    view.Frictions,
		Ideas:        view.Ideas,
	}
	for _, wk := range view.Weeks {
		resp.Weeks = append(resp.Weeks, weekInfo{
			WeekStart: wk.Key(),
			WeekEnd:   wk.WeekEnd.Format(dateLayout),
			NoteCount: wk.NoteCount,
		})
	}
	if len(view.Weeks) > 0 {
		resp.RangeStart = view.RangeStart.Format(dateLayout)
		resp.RangeEnd = view.RangeEnd.Format(dateLayout)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("api: failed to encode response: %v", err)
	}
}
