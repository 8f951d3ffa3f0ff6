package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/notecat/internal/domain"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSaveLoad(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.Save("theme", "dark"))
	require.NoError(t, s.Save("theme", "light"))

	v, err := s.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	missing, err := s.Get("nope")
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "light", all["theme"])
}

func TestAPIKeys(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.SetAPIKey(domain.ProviderChatGPT, "  sk-1  "))
	require.NoError(t, s.SetAPIKey(domain.ProviderGemini, "g-1"))

	key, err := s.APIKey(domain.ProviderChatGPT)
	require.NoError(t, err)
	assert.Equal(t, "sk-1", key)

	// chatgpt is stored under its credential name
	raw, err := s.Get("apikey.openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-1", raw)

	keys, err := s.APIKeys()
	require.NoError(t, err)
	assert.Equal(t, "g-1", keys[domain.ProviderGemini])
	assert.Empty(t, keys[domain.ProviderMistral])

	require.NoError(t, s.SetAPIKey(domain.ProviderGemini, ""))
	key, err = s.APIKey(domain.ProviderGemini)
	require.NoError(t, err)
	assert.Empty(t, key)

	err = s.SetAPIKey(domain.Provider("llama"), "x")
	assert.True(t, domain.IsConfiguration(err))
}

func TestCategories_SeededOnce(t *testing.T) {
	s, path := openTestStore(t)

	cats, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategories, cats)

	require.NoError(t, s.RemoveCategory("Work"))
	require.NoError(t, s.AddCategory("  Travel "))
	require.NoError(t, s.AddCategory("Travel"))
	require.NoError(t, s.AddCategory("   "))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	cats, err = reopened.Categories()
	require.NoError(t, err)
	assert.NotContains(t, cats, "Work")
	assert.Equal(t, "Travel", cats[len(cats)-1])
	assert.Len(t, cats, len(domain.DefaultCategories))
}

func TestPreferences(t *testing.T) {
	s, _ := openTestStore(t)

	enabled, err := s.AIEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, s.SetAIEnabled(false))
	enabled, err = s.AIEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	p, err := s.Provider()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderChatGPT, p)

	require.NoError(t, s.SetProvider(domain.ProviderGemini))
	p, err = s.Provider()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, p)

	assert.True(t, domain.IsConfiguration(s.SetProvider("nope")))
}

func TestDefaultProvider_KeepsSavedSelection(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.DefaultProvider(domain.ProviderClaude))
	p, err := s.Provider()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderClaude, p)

	require.NoError(t, s.SetProvider(domain.ProviderGemini))
	require.NoError(t, s.DefaultProvider(domain.ProviderClaude))
	p, err = s.Provider()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGemini, p)

	assert.True(t, domain.IsConfiguration(s.DefaultProvider("nope")))
}
