// Package settings persists the values a session loads on start and saves on
// change: provider API keys, the category list and AI preferences.
package settings

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/notecat/internal/domain"
)

//go:embed schema.sql
var schema string

const (
	keyAIEnabled    = "ai.enabled"
	keyProvider     = "ai.provider"
	keySeeded       = "categories.seeded"
	apiKeyPrefix    = "apikey."
	defaultProvider = domain.ProviderChatGPT
)

// Store handles settings persistence
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every stored key and value
func (s *Store) Load() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		values[k] = v
	}

	return values, rows.Err()
}

// Get returns the value for key, or "" if unset
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// Save stores value under key
func (s *Store) Save(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// APIKey returns the stored credential for a provider
func (s *Store) APIKey(p domain.Provider) (string, error) {
	return s.Get(apiKeyPrefix + p.CredentialName())
}

// SetAPIKey stores the credential for a provider; an empty key clears it
func (s *Store) SetAPIKey(p domain.Provider, key string) error {
	if !p.Valid() {
		return &domain.ConfigurationError{Provider: p, Message: "invalid AI model selected"}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Delete(apiKeyPrefix + p.CredentialName())
	}
	return s.Save(apiKeyPrefix+p.CredentialName(), key)
}

// APIKeys returns the credential of every provider, empty when unset
func (s *Store) APIKeys() (map[domain.Provider]string, error) {
	values, err := s.Load()
	if err != nil {
		return nil, err
	}

	keys := make(map[domain.Provider]string, len(domain.Providers))
	for _, p := range domain.Providers {
		keys[p] = values[apiKeyPrefix+p.CredentialName()]
	}
	return keys, nil
}

// AIEnabled reports whether categorization is switched on, defaulting to true
func (s *Store) AIEnabled() (bool, error) {
	v, err := s.Get(keyAIEnabled)
	if err != nil || v == "" {
		return true, err
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true, fmt.Errorf("parse %s: %w", keyAIEnabled, err)
	}
	return enabled, nil
}

// SetAIEnabled switches categorization on or off
func (s *Store) SetAIEnabled(enabled bool) error {
	return s.Save(keyAIEnabled, strconv.FormatBool(enabled))
}

// Provider returns the selected provider, defaulting to chatgpt
func (s *Store) Provider() (domain.Provider, error) {
	v, err := s.Get(keyProvider)
	if err != nil || v == "" {
		return defaultProvider, err
	}
	return domain.Provider(v), nil
}

// SetProvider selects the provider used for new notes
func (s *Store) SetProvider(p domain.Provider) error {
	if !p.Valid() {
		return &domain.ConfigurationError{Provider: p, Message: "invalid AI model selected"}
	}
	return s.Save(keyProvider, string(p))
}

// DefaultProvider selects p unless a provider is already saved
func (s *Store) DefaultProvider(p domain.Provider) error {
	if !p.Valid() {
		return &domain.ConfigurationError{Provider: p, Message: "invalid AI model selected"}
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)",
		keyProvider, string(p),
	); err != nil {
		return fmt.Errorf("save setting %s: %w", keyProvider, err)
	}
	return nil
}

// Categories returns the category list in creation order
func (s *Store) Categories() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM categories ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// AddCategory appends name to the category list; blank or known names are ignored
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO categories (id, name, created_at) VALUES (?, ?, ?)",
		uuid.New().String(), name, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// RemoveCategory drops name from the category list
func (s *Store) RemoveCategory(name string) error {
	if _, err := s.db.Exec("DELETE FROM categories WHERE name = ?", name); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}

// seedCategories installs the default list once, so removals stick
func (s *Store) seedCategories() error {
	seeded, err := s.Get(keySeeded)
	if err != nil || seeded != "" {
		return err
	}

	for _, name := range domain.DefaultCategories {
		if err := s.AddCategory(name); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return s.Save(keySeeded, "true")
}
