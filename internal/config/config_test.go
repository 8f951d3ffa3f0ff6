package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/notecat/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
db: /tmp/notes.db
addr: 127.0.0.1:9000
provider: gemini
author:
  name: Jane Smith
  avatar: /avatars/jane.png
timeout: 5s
rate_limit: 2
admin: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notes.db", cfg.DB)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, Author{Name: "Jane Smith", Avatar: "/avatars/jane.png"}, cfg.Author)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.InDelta(t, 2.0, cfg.RateLimit, 0.001)
	assert.False(t, cfg.Admin)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "User Name", cfg.Author.Name)
	assert.True(t, cfg.Admin)
	assert.Equal(t, "settings.db", filepath.Base(cfg.DB))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("NOTECAT_ADDR", ":7070")
	t.Setenv("NOTECAT_AUTHOR_NAME", "Alex Johnson")

	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "Alex Johnson", cfg.Author.Name)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "provider: llama\n"))
	require.Error(t, err)
	assert.True(t, domain.IsConfiguration(err))

	_, err = Load(writeConfig(t, "timeout: 0s\n"))
	assert.ErrorContains(t, err, "timeout")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
