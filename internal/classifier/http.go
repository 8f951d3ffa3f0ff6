package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pbaille/notecat/internal/domain"
)

// maxResponseBytes caps provider response bodies
const maxResponseBytes = 1 << 20

type apiErrorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// postJSON sends reqBody to url and decodes a successful reply into respBody.
// Every failure is reported as a TransportError for provider.
func postJSON(ctx context.Context, client *http.Client, provider domain.Provider, url string, headers map[string]string, reqBody, respBody any) error {
	fail := func(status int, err error) error {
		return &domain.TransportError{Provider: provider, StatusCode: status, Err: err}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fail(0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorBody
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
			return fail(resp.StatusCode, fmt.Errorf("api error: %s", apiErr.Error.Message))
		}
		return fail(resp.StatusCode, fmt.Errorf("api error: %s", string(body)))
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("unmarshal response: %w", err))
	}

	return nil
}
