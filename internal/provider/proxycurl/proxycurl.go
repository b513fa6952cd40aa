// Package proxycurl wraps the Proxycurl person-profile API used for
// LinkedIn lookups.
package proxycurl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)
	return &Client{http: c}
}

// Profile is the subset of the Proxycurl person profile we relay.
type Profile struct {
	PublicIdentifier string       `json:"public_identifier"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	FullName         string       `json:"full_name"`
	Occupation       string       `json:"occupation"`
	Headline         string       `json:"headline"`
	Summary          string       `json:"summary"`
	Country          string       `json:"country_full_name"`
	City             string       `json:"city"`
	Skills           []string     `json:"skills"`
	Experiences      []Experience `json:"experiences"`
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("proxycurl: %d %s", e.StatusCode, e.Body)
}

// PersonProfile fetches the profile behind a LinkedIn URL.
func (c *Client) PersonProfile(ctx context.Context, linkedinURL string) (*Profile, error) {
	var p Profile
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("url", linkedinURL).
		SetResult(&p).
		Get("/api/v2/linkedin")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return &p, nil
}
