// Package fallback calls the remote AI endpoint used for turns the matcher
// could not place.
package fallback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/pkg/log"
)

// maxBody caps how much of a response is read.
const maxBody = 64 << 10

type Client struct {
	client *http.Client
	url    string
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// NewClientFromConfig returns nil when no endpoint is configured.
func NewClientFromConfig(cfg core.FallbackConfig) *Client {
	if cfg.GetFallbackURL() == "" {
		return nil
	}
	return NewClient(cfg.GetFallbackURL(), cfg.GetFallbackTimeout())
}

// Fetch asks the endpoint for an answer. It reports false on any failure and
// never returns an error: callers keep their local reply instead.
func (c *Client) Fetch(ctx context.Context, payload core.FallbackPayload) (string, bool) {
	logger := log.FromCtx(ctx)

	text, err := c.fetch(ctx, payload)
	if err != nil {
		logger.Warn().Err(err).Str("url", c.url).Msg("ai fallback unavailable")
		return "", false
	}
	if text == "" {
		logger.Debug().Str("url", c.url).Msg("ai fallback returned empty text")
		return "", false
	}
	return text, true
}

func (c *Client) fetch(ctx context.Context, payload core.FallbackPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.FolioUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	var text string
	if err := json.Unmarshal(result.Text, &text); err != nil {
		return "", fmt.Errorf("text is not a string: %s", string(result.Text))
	}
	return strings.TrimSpace(text), nil
}
