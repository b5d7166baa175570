// Package httpapi is the HTTP glue around the journal engine: a chi
// router exposing the conversational endpoint, read-side queries, and a
// small embedded chat page. It holds no logic of its own; every request
// is decoded, handed to the engine, and the structured reply encoded
// back out as JSON.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/logging"
	"github.com/hurttlocker/jot/internal/store"
)

// maxMessageBytes caps request bodies; core text operations are linear
// in input length but pathological inputs are cut off at the door.
const maxMessageBytes = 64 * 1024

// Server routes HTTP traffic to a journal engine.
type Server struct {
	router  *chi.Mux
	engine  *journal.Engine
	version string
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version string reported by /api/stats.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New builds the router over the given engine.
func New(engine *journal.Engine, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		engine:  engine,
		version: "dev",
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/message", s.handleMessage)
		r.Get("/query", s.handleQuery)
		r.Get("/entries", s.handleEntries)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/healthz", s.handleHealthz)
	r.Get("/", s.handleIndex)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger logs one line per request.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type messageRequest struct {
	Message string `json:"message"`
}

// handleMessage runs one conversational round trip.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req messageRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON with a \"message\" field")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	reply := s.engine.HandleMessage(r.Context(), req.Message)
	respondJSON(w, http.StatusOK, reply)
}

type queryResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Entries []*store.Entry `json:"entries"`
	Items   []string       `json:"items"`
}

// handleQuery runs the read side only: no entry is ever stored.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, "query parameter \"q\" is required")
		return
	}

	entries := s.engine.Search().Query(q)
	items := s.engine.Search().ItemsFor(entries)
	respondJSON(w, http.StatusOK, queryResponse{
		Query:   q,
		Count:   len(entries),
		Entries: entries,
		Items:   items,
	})
}

type entriesResponse struct {
	Count   int            `json:"count"`
	Entries []*store.Entry `json:"entries"`
}

// handleEntries returns stored entries newest-first, optionally capped
// by ?limit=.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	st := s.engine.Store()

	entries := st.All()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		entries = st.Recent(limit)
	}

	respondJSON(w, http.StatusOK, entriesResponse{
		Count:   len(entries),
		Entries: entries,
	})
}

type statsResponse struct {
	store.Stats
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, statsResponse{
		Stats:         s.engine.Store().Snapshot(),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Error("encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
