// internal/provider/openai/client.openai.go
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a minimal chat-completions client. We only need one-shot
// completions for resume scoring, so no streaming or tool calls.
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseURL, apiKey, model string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(60 * time.Second)
	return &Client{http: c, model: model}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: %d %s", e.StatusCode, e.Message)
}

// Complete sends a system+user prompt and returns the assistant text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var res chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []Message{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: 0.2, // low temperature for consistent scoring
		}).
		SetResult(&res).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := string(resp.Body())
		return "", &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	if len(res.Choices) == 0 {
		return "", &APIError{StatusCode: resp.StatusCode(), Message: "no completion choices returned"}
	}
	return res.Choices[0].Message.Content, nil
}
