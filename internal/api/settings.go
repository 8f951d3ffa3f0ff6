package api

import (
	"net/http"

	"github.com/pbaille/notecat/internal/domain"
)

// SettingsResponse describes the session settings; keys are masked
type SettingsResponse struct {
	AIEnabled  bool              `json:"ai_enabled"`
	Provider   domain.Provider   `json:"provider"`
	Providers  []domain.Provider `json:"providers"`
	Categories []string          `json:"categories"`
	Keys       map[string]string `json:"keys"`
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	enabled, err := s.settings.AIEnabled()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	provider, err := s.settings.Provider()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	categories, err := s.settings.Categories()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	keys, err := s.settings.APIKeys()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	masked := make(map[string]string, len(keys))
	for p, key := range keys {
		masked[string(p)] = mask(key)
	}

	writeJSON(w, http.StatusOK, SettingsResponse{
		AIEnabled:  enabled,
		Provider:   provider,
		Providers:  domain.Providers,
		Categories: categories,
		Keys:       masked,
	})
}

func (s *Server) setAI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settings.SetAIEnabled(req.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider domain.Provider `json:"provider"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settings.SetProvider(req.Provider); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settings.SetAPIKey(domain.Provider(r.PathValue("provider")), req.Key); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settings.AddCategory(req.Name); err != nil {
		writeDomainError(w, err)
		return
	}

	categories, err := s.settings.Categories()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) removeCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.RemoveCategory(r.PathValue("name")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mask hides all but the last four characters of a key
func mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
