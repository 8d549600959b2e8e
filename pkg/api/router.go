package api

import (
	"net/http"

	"github.com/jj-morpho/granola-digest/pkg/ai"
	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/digest"
)

// NewRouter creates a new HTTP router
func NewRouter(svc *digest.Service, repo *db.Repository, aiClient ai.Generator) *http.ServeMux {
	mux := http.NewServeMux()

	h := &Handler{
		Digest: svc,
		Repo:   repo,
		AI:     aiClient,
	}

	mux.HandleFunc("GET /digest", h.HandleGetDigest)
	mux.HandleFunc("GET /digest/text", h.HandleGetDigestText)
	mux.HandleFunc("POST /digest/narrative", h.HandleDigestNarrative)
	mux.HandleFunc("GET /weeks", h.HandleListWeeks)
	mux.HandleFunc("POST /refresh", h.HandleRefresh)

	return mux
}
