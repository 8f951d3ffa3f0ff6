package classifier

import (
	"context"
	"net/http"
	"strings"

	"github.com/pbaille/notecat/internal/domain"
)

const anthropicAPI = "https://api.anthropic.com"

// Anthropic categorizes notes through the Anthropic messages API
type Anthropic struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewAnthropic creates an Anthropic categorizer
func NewAnthropic(client *http.Client) *Anthropic {
	return &Anthropic{
		BaseURL: anthropicAPI,
		Model:   "claude-sonnet-4-20250514",
		Client:  client,
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Categorize sends the note as the user turn and returns the trimmed label
func (a *Anthropic) Categorize(ctx context.Context, content, apiKey string) (string, error) {
	reqBody := anthropicRequest{
		Model:       a.Model,
		MaxTokens:   maxLabelTokens,
		Temperature: labelTemperature,
		System:      systemInstruction(),
		Messages: []anthropicMessage{
			{Role: "user", Content: content},
		},
	}

	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	}

	var apiResp anthropicResponse
	if err := postJSON(ctx, a.Client, domain.ProviderClaude, a.BaseURL+"/v1/messages", headers, reqBody, &apiResp); err != nil {
		return "", err
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "" || block.Type == "text" {
			text = block.Text
			break
		}
	}

	category := strings.TrimSpace(text)
	if category == "" {
		return "", &domain.EmptyResponseError{Provider: domain.ProviderClaude}
	}
	return category, nil
}
