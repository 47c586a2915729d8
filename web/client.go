// ABOUTME: HTTP remote backend talking to an outreach sync server
// ABOUTME: Implements store.Backend with GET and PUT on /kv/{key}
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harperreed/outreach/store"
)

// Client is a store.Backend for a remote sync server.
type Client struct {
	http *resty.Client
	key  string
}

// NewClient creates a client for baseURL. token, when set, is sent as a
// bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{http: rc, key: StateKey}
}

func (c *Client) Load(ctx context.Context) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("key", c.key).
		Get("/kv/{key}")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote state: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return resp.Body(), nil
	case http.StatusNotFound:
		return nil, store.ErrNotFound
	default:
		return nil, fmt.Errorf("remote state fetch returned %s", resp.Status())
	}
}

func (c *Client) Save(ctx context.Context, data []byte) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("key", c.key).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		Put("/kv/{key}")
	if err != nil {
		return fmt.Errorf("failed to push remote state: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote state push returned %s", resp.Status())
	}
	return nil
}
