package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pbaille/notecat/internal/domain"
	"github.com/pbaille/notecat/internal/fetcher"
	"github.com/pbaille/notecat/internal/store"
)

// AddNoteRequest is the request body for adding a note
type AddNoteRequest struct {
	Content  string          `json:"content"`
	Provider domain.Provider `json:"provider,omitempty"`
}

// ReorderRequest moves the note at From to To
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveRequest drops the note ActiveID onto the position of OverID
type MoveRequest struct {
	ActiveID string `json:"active_id"`
	OverID   string `json:"over_id"`
}

// AnalyticsResponse is the analytics dashboard payload
type AnalyticsResponse struct {
	Range       string           `json:"range"`
	Activity    store.Activity   `json:"activity"`
	Daily       []store.DayCount `json:"daily"`
	Categories  []store.Count    `json:"categories"`
	TopCategory string           `json:"top_category,omitempty"`
	Leaderboard []store.Count    `json:"leaderboard"`
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Member:   q.Get("member"),
		Date:     q.Get("date"),
	}

	s.mu.Lock()
	notes := s.notes.Filtered(f)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"notes":  notes,
		"filter": f,
	})
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	note, err := s.notes.Get(r.PathValue("id"))
	s.mu.Unlock()

	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	var req AddNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	enabled, err := s.settings.AIEnabled()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !enabled {
		writeError(w, http.StatusConflict, "AI categorization is disabled")
		return
	}

	provider := req.Provider
	if provider == "" {
		if provider, err = s.settings.Provider(); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	apiKey, err := s.settings.APIKey(provider)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	text := s.expand(r.Context(), req.Content)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	category, err := s.categorize.Categorize(ctx, text, provider, apiKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	note := domain.Note{
		ID:        s.newID(),
		Content:   req.Content,
		Category:  category,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Author:    s.author,
	}

	s.mu.Lock()
	err = s.notes.Append(note)
	s.mu.Unlock()

	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.Info("note added", "id", note.ID, "category", note.Category, "provider", string(provider))
	writeJSON(w, http.StatusCreated, note)
}

// expand swaps a link note for the linked page text; the note keeps the link.
// The fetch has its own deadline, separate from categorization.
func (s *Server) expand(ctx context.Context, content string) string {
	if s.fetcher == nil || !fetcher.IsURL(content) {
		return content
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.fetcher.Fetch(ctx, content)
	if err != nil {
		s.logger.Warn("expand link note", "url", content, "error", err)
		return content
	}
	return text
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	if !s.authz.CanDelete(r) {
		writeError(w, http.StatusForbidden, "only admin users can delete notes")
		return
	}

	id := r.PathValue("id")

	s.mu.Lock()
	err := s.notes.Remove(id)
	s.mu.Unlock()

	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.Info("note removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reorderNotes(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	err := s.notes.Reorder(req.From, req.To)
	notes := s.notes.Notes()
	s.mu.Unlock()

	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) moveNote(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	err := s.notes.Move(req.ActiveID, req.OverID)
	notes := s.notes.Notes()
	s.mu.Unlock()

	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	window := store.WindowWeek
	switch rng {
	case "", "week":
		rng = "week"
	case "month":
		window = store.WindowMonth
	default:
		writeError(w, http.StatusBadRequest, "range must be week or month")
		return
	}

	s.mu.Lock()
	resp := AnalyticsResponse{
		Range:       rng,
		Activity:    s.notes.Activity(),
		Daily:       s.notes.DailyCounts(window),
		Categories:  s.notes.CategoryDistribution(),
		TopCategory: s.notes.TopCategory(),
		Leaderboard: s.notes.Leaderboard(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}
