// Package worldid relays zero-knowledge proof verifications to the
// World ID developer API.
package worldid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	BaseURL    string
	AppID      string
	HttpClient *http.Client
}

func NewClient(baseURL, appID string) *Client {
	return &Client{
		BaseURL:    baseURL,
		AppID:      appID,
		HttpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyRequest is the proof payload forwarded untouched to World ID.
type VerifyRequest struct {
	NullifierHash     string `json:"nullifier_hash"`
	MerkleRoot        string `json:"merkle_root"`
	Proof             string `json:"proof"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
}

type VerifyResult struct {
	NullifierHash string `json:"nullifier_hash"`
}

// APIError carries the status and detail World ID returned for a rejected
// proof; it is relayed to our caller with the same status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("worldid: %d %s", e.StatusCode, e.Detail)
}

// Verify posts the proof to /api/v1/verify/{appID}.
func (c *Client) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/verify/%s", c.BaseURL, c.AppID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}

	var res VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
