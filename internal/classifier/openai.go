package classifier

import (
	"context"
	"net/http"
	"strings"

	"github.com/pbaille/notecat/internal/domain"
)

const openaiAPI = "https://api.openai.com"

const (
	labelTemperature = 0.3
	maxLabelTokens   = 10
)

// OpenAI categorizes notes through the chat completions API
type OpenAI struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewOpenAI creates an OpenAI categorizer
func NewOpenAI(client *http.Client) *OpenAI {
	return &OpenAI{
		BaseURL: openaiAPI,
		Model:   "gpt-3.5-turbo",
		Client:  client,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Categorize sends the note as the user turn and returns the first choice, trimmed
func (o *OpenAI) Categorize(ctx context.Context, content, apiKey string) (string, error) {
	reqBody := chatRequest{
		Model: o.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction()},
			{Role: "user", Content: content},
		},
		Temperature: labelTemperature,
		MaxTokens:   maxLabelTokens,
	}

	headers := map[string]string{"Authorization": "Bearer " + apiKey}

	var apiResp chatResponse
	if err := postJSON(ctx, o.Client, domain.ProviderChatGPT, o.BaseURL+"/v1/chat/completions", headers, reqBody, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Choices) == 0 {
		return "", &domain.EmptyResponseError{Provider: domain.ProviderChatGPT}
	}

	category := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if category == "" {
		return "", &domain.EmptyResponseError{Provider: domain.ProviderChatGPT}
	}
	return category, nil
}

func systemInstruction() string {
	return "You are a helpful assistant that categorizes notes. You must respond with a single word or short phrase " +
		"that best categorizes the given note. Common categories include: " + taxonomyList() +
		". Only respond with the category name, nothing else."
}
