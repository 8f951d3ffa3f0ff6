package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/notecat/internal/domain"
	"github.com/pbaille/notecat/internal/store"
)

// Categorizer resolves a category for note content
type Categorizer interface {
	Categorize(ctx context.Context, content string, provider domain.Provider, apiKey string) (string, error)
}

// Fetcher expands link notes into page text
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Settings is the persisted session configuration
type Settings interface {
	APIKey(p domain.Provider) (string, error)
	APIKeys() (map[domain.Provider]string, error)
	SetAPIKey(p domain.Provider, key string) error
	Categories() ([]string, error)
	AddCategory(name string) error
	RemoveCategory(name string) error
	AIEnabled() (bool, error)
	SetAIEnabled(enabled bool) error
	Provider() (domain.Provider, error)
	SetProvider(p domain.Provider) error
}

// Authorizer answers role checks for the requesting user
type Authorizer interface {
	CanDelete(r *http.Request) bool
}

// StaticRole grants or denies deletion to every request
type StaticRole struct {
	Admin bool
}

// CanDelete reports whether the session user is an admin
func (s StaticRole) CanDelete(r *http.Request) bool {
	return s.Admin
}

// Server handles HTTP requests for one note-taking session
type Server struct {
	addr       string
	notes      *store.Store
	settings   Settings
	categorize Categorizer
	fetcher    Fetcher
	authz      Authorizer
	author     domain.Author
	timeout    time.Duration
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string

	// mu serializes access to notes
	mu sync.Mutex
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and diagnostics logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithAuthor sets the identity stamped on new notes
func WithAuthor(author domain.Author) Option {
	return func(s *Server) { s.author = author }
}

// WithTimeout bounds each categorization call
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithFetcher enables link expansion before categorization
func WithFetcher(f Fetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

// WithAuthorizer sets the role check used for deletions
func WithAuthorizer(a Authorizer) Option {
	return func(s *Server) { s.authz = a }
}

// WithClock sets the clock used for note timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a new API server
func New(notes *store.Store, settings Settings, c Categorizer, addr string, opts ...Option) *Server {
	s := &Server{
		addr:       addr,
		notes:      notes,
		settings:   settings,
		categorize: c,
		authz:      StaticRole{Admin: true},
		author:     domain.Author{Name: "User Name", Avatar: "/placeholder.svg"},
		timeout:    30 * time.Second,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Notes
	mux.HandleFunc("GET /notes", s.listNotes)
	mux.HandleFunc("POST /notes", s.addNote)
	mux.HandleFunc("GET /notes/{id}", s.getNote)
	mux.HandleFunc("DELETE /notes/{id}", s.deleteNote)
	mux.HandleFunc("POST /notes/reorder", s.reorderNotes)
	mux.HandleFunc("POST /notes/move", s.moveNote)

	// Analytics
	mux.HandleFunc("GET /analytics", s.analytics)

	// Settings
	mux.HandleFunc("GET /settings", s.getSettings)
	mux.HandleFunc("PUT /settings/ai", s.setAI)
	mux.HandleFunc("PUT /settings/provider", s.setProvider)
	mux.HandleFunc("PUT /settings/keys/{provider}", s.setKey)
	mux.HandleFunc("POST /settings/categories", s.addCategory)
	mux.HandleFunc("DELETE /settings/categories/{name}", s.removeCategory)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return s.withLogging(withCORS(mux))
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.logger.Info("starting server", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps the error taxonomy onto HTTP statuses
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsConfiguration(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsEmptyResponse(err), domain.IsTransport(err):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrIndexOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
