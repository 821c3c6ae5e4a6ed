// Package dashboard serves a small read-only web view over the tracker
// state: an HTML summary page and a JSON API. State is re-read from the
// store per request and memoized for a short interval, so the dashboard
// never blocks on portfolio recomputation.
package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gocache "github.com/patrickmn/go-cache"

	tracker "github.com/shazib/mftracker"
)

const (
	cacheKey = "summary"
	cacheTTL = time.Minute
)

// Server serves the dashboard.
type Server struct {
	dataDir string
	cache   *gocache.Cache
}

// New returns a dashboard server reading from the given data directory.
func New(dataDir string) *Server {
	return &Server{
		dataDir: dataDir,
		cache:   gocache.New(cacheTTL, 5*time.Minute),
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/api/funds/{id}", s.handleFund)
	return r
}

// ListenAndServe blocks serving the dashboard on addr.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("dashboard listening", "addr", addr)
	return http.ListenAndServe(addr, s.Routes())
}

// summary loads the store and builds the summary, memoized for cacheTTL.
func (s *Server) summary() (*tracker.Summary, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*tracker.Summary), nil
	}
	t, err := tracker.Open(s.dataDir)
	if err != nil {
		return nil, err
	}
	sum, err := t.Summary()
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(cacheKey, sum)
	return sum, nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sum)
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := tracker.Open(s.dataDir)
	if err != nil {
		writeError(w, err)
		return
	}
	fund := t.Inv.Fund(id)
	if fund == nil {
		http.Error(w, "unknown fund", http.StatusNotFound)
		return
	}
	writeJSON(w, fund)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("dashboard: encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrNoFunds), errors.Is(err, tracker.ErrIncompleteData):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("dashboard: request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
