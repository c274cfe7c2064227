package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/recommend"
)

// Recommender runs recommendation queries.
type Recommender interface {
	Recommend(ctx context.Context, word string) (recommend.Result, error)
}

// Resolver resolves mood words.
type Resolver interface {
	Resolve(ctx context.Context, word string) mood.Resolution
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	engine   Recommender
	resolver Resolver
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine Recommender, resolver Resolver) *Handlers {
	return &Handlers{
		engine:   engine,
		resolver: resolver,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Recommend runs a query (GET /api/recommend?mood=<word>[&explain=true]).
// Empty results are still 200; the reason field says why.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("mood")
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing mood parameter"})
		return
	}
	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))

	res, err := h.engine.Recommend(r.Context(), word)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "request cancelled"})
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommend failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	if !explain {
		res.Explain = nil
	}
	writeJSON(w, http.StatusOK, res)
}

// Resolve maps a word onto a mood category (GET /api/resolve?word=<word>).
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing word parameter"})
		return
	}
	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), word))
}

// Healthz reports liveness (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
