// Package server exposes a fetched listing and its query engine over HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/bucket-browser/fetch"
	"github.com/yourusername/bucket-browser/listing"
	"github.com/yourusername/bucket-browser/output"
	"github.com/yourusername/bucket-browser/query"
	"github.com/yourusername/bucket-browser/types"
)

// Server holds the most recently parsed listing for one source
type Server struct {
	fetcher fetch.Fetcher

	mu        sync.RWMutex
	listing   *types.BucketListing
	fetchedAt time.Time
}

type errorBody struct {
	Error string `json:"error"`
}

type listingBody struct {
	Name           string    `json:"name"`
	Prefix         string    `json:"prefix"`
	MaxKeys        string    `json:"maxKeys"`
	IsTruncated    bool      `json:"isTruncated"`
	TotalCount     int       `json:"totalCount"`
	TotalSizeBytes int64     `json:"totalSizeBytes"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// New creates a server for fetcher. Call Refresh before serving to load a listing.
func New(fetcher fetch.Fetcher) *Server {
	return &Server{fetcher: fetcher}
}

// Refresh fetches and parses a new document. On failure the previous listing stays in place.
func (s *Server) Refresh(ctx context.Context) error {
	doc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch listing: %w", err)
	}
	parsed, err := listing.Parse(doc)
	if err != nil {
		return fmt.Errorf("failed to parse listing: %w", err)
	}

	s.mu.Lock()
	s.listing = parsed
	s.fetchedAt = time.Now().UTC()
	s.mu.Unlock()

	log.Info().
		Str("source", s.fetcher.Source()).
		Str("bucket", parsed.Name).
		Int("objects", parsed.TotalCount).
		Msg("Loaded listing")
	return nil
}

// Handler returns the routed API wrapped in an access logger
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/listing", s.handleListing).Methods(http.MethodGet)
	r.HandleFunc("/api/objects", s.handleObjects).Methods(http.MethodGet)
	r.HandleFunc("/api/refresh", s.handleRefresh).Methods(http.MethodPost)

	return handlers.CombinedLoggingHandler(accessLogWriter{}, r)
}

func (s *Server) current() (*types.BucketListing, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listing, s.fetchedAt
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	l, fetchedAt := s.current()
	if l == nil {
		writeError(w, http.StatusServiceUnavailable, "no listing loaded")
		return
	}

	writeJSON(w, http.StatusOK, listingBody{
		Name:           l.Name,
		Prefix:         l.Prefix,
		MaxKeys:        l.MaxKeys,
		IsTruncated:    l.IsTruncated,
		TotalCount:     l.TotalCount,
		TotalSizeBytes: l.TotalSizeBytes,
		FetchedAt:      fetchedAt,
	})
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	l, _ := s.current()
	if l == nil {
		writeError(w, http.StatusServiceUnavailable, "no listing loaded")
		return
	}

	dir, err := query.ParseSortDirection(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	objects := query.Query(l, r.URL.Query().Get("q"), dir)
	writeJSON(w, http.StatusOK, output.NewListingView(l, objects))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.Refresh(r.Context())
	switch {
	case err == nil:
		s.handleListing(w, r)
	case errors.Is(err, listing.ErrMalformedXML):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// accessLogWriter forwards combined-format access log lines to the global logger
type accessLogWriter struct{}

func (accessLogWriter) Write(p []byte) (int, error) {
	line := p
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	log.WithLevel(zerolog.InfoLevel).Str("component", "http").Msg(string(line))
	return len(p), nil
}
