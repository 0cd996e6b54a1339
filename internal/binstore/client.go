// Package binstore talks to the hosted JSON bin holding the scenario
// document. The bin responds with an envelope that wraps the stored
// value under a "record" property; Fetch unwraps it so callers only
// ever see the document itself.
package binstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vrsetup/scenctl/pkg/types"
)

// Client is a thin HTTP client for one JSON bin.
type Client struct {
	BaseURL   string
	MasterKey string
	HTTP      *http.Client
}

// New builds a Client from a validated config.
func New(cfg types.Config) *Client {
	return &Client{
		BaseURL:   cfg.BinURL,
		MasterKey: cfg.MasterKey,
		HTTP:      &http.Client{Timeout: cfg.Timeout()},
	}
}

// Fetch downloads the bin's current document, returning its raw JSON so
// callers can decode it with document order intact.
func (c *Client) Fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching bin: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading bin response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpError(resp.StatusCode, body)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decoding bin response: invalid JSON")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if record, present := envelope["record"]; present {
			return record, nil
		}
	}
	return body, nil
}

// Upload replaces the bin's document.
func (c *Client) Upload(ctx context.Context, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("uploading bin: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return httpError(resp.StatusCode, body)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.MasterKey != "" {
		req.Header.Set("X-Master-Key", c.MasterKey)
	}
}

// httpError surfaces the server's message when it sends one, falling
// back to a truncated body for non-JSON error pages.
func httpError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return fmt.Errorf("HTTP %d: %s", status, envelope.Message)
	}
	text := string(body)
	if len(text) > 300 {
		text = text[:300]
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return fmt.Errorf("HTTP %d: %s", status, text)
}
