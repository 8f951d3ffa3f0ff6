package classifier

import (
	"context"
	"net/http"
	"strings"

	"github.com/pbaille/notecat/internal/domain"
)

const geminiAPI = "https://generativelanguage.googleapis.com"

// Gemini categorizes notes through a single-prompt generateContent call
type Gemini struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewGemini creates a Gemini categorizer
func NewGemini(client *http.Client) *Gemini {
	return &Gemini{
		BaseURL: geminiAPI,
		Model:   "gemini-pro",
		Client:  client,
	}
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Categorize asks for a label and normalizes the generated text
func (g *Gemini) Categorize(ctx context.Context, content, apiKey string) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: buildPrompt(content)}}},
		},
	}

	url := g.BaseURL + "/v1beta/models/" + g.Model + ":generateContent"
	headers := map[string]string{"x-goog-api-key": apiKey}

	var apiResp generateResponse
	if err := postJSON(ctx, g.Client, domain.ProviderGemini, url, headers, reqBody, &apiResp); err != nil {
		return "", err
	}

	var sb strings.Builder
	if len(apiResp.Candidates) > 0 {
		for _, part := range apiResp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	category := Normalize(strings.TrimSpace(sb.String()))
	if category == "" {
		return "", &domain.EmptyResponseError{Provider: domain.ProviderGemini}
	}
	return category, nil
}

func buildPrompt(content string) string {
	var sb strings.Builder

	sb.WriteString("Categorize this note with a single word or short phrase. Choose from these categories: ")
	sb.WriteString(taxonomyList())
	sb.WriteString(". Only respond with the category name, nothing else.\n\n")
	sb.WriteString("Note: \"")
	sb.WriteString(content)
	sb.WriteString("\"")

	return sb.String()
}
