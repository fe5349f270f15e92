// Package github fetches a user's public repositories for the profile page.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrProfileNotFound = errors.New("no github profile found")

type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      "https://api.github.com",
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Repos returns the user's five most recently created public repositories as
// raw JSON, proxied to the client unchanged.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	query := url.Values{
		"per_page": {"5"},
		"sort":     {"created:asc"},
	}
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devlink")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrProfileNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading github response: %w", err)
	}

	return json.RawMessage(body), nil
}
