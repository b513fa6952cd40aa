// internal/provider/circle/client.circle.go
package circle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wisemik/veretha-backend/pkg/security"
)

// Client talks to the Circle developer-controlled wallets API.
// Every privileged (mutating) call carries a fresh entity-secret envelope.
type Client struct {
	BaseURL    string
	APIKey     string
	Blockchain string
	Entity     *security.EntitySecret
	HttpClient *http.Client
}

func NewClient(baseURL, apiKey, blockchain string, entity *security.EntitySecret) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Blockchain: blockchain,
		Entity:     entity,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx answer (or a structurally broken 2xx answer) from
// Circle. It is relayed to the caller as-is, never retried locally.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("circle: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Code: e.Code, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: "malformed response body"}
		}
	}
	return nil
}
