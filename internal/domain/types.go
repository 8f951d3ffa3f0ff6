package domain

import "time"

// Note represents a categorized piece of content
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	Author    Author `json:"author"`
}

// Author identifies the user who created a note
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Time parses the note timestamp
func (n Note) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, n.Timestamp)
}

// Provider identifies an AI categorization service
type Provider string

const (
	ProviderChatGPT Provider = "chatgpt"
	ProviderGemini  Provider = "gemini"
	ProviderClaude  Provider = "claude"
	ProviderMistral Provider = "mistral"
)

// Providers lists the known providers in display order
var Providers = []Provider{ProviderChatGPT, ProviderGemini, ProviderClaude, ProviderMistral}

// CredentialName returns the settings key holding the provider's API key
func (p Provider) CredentialName() string {
	switch p {
	case ProviderChatGPT:
		return "openai"
	case ProviderClaude:
		return "anthropic"
	default:
		return string(p)
	}
}

// Valid reports whether p is one of the known providers
func (p Provider) Valid() bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultCategories seeds the category list of a fresh settings store
var DefaultCategories = []string{"Work", "Personal", "Ideas", "Tasks", "Meetings", "Research"}

// Taxonomy is the category guidance given to providers
var Taxonomy = []string{
	"Work", "Personal", "Ideas", "Tasks", "Meetings",
	"Research", "Shopping", "Health", "Travel", "Education",
}
