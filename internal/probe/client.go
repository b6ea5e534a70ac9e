package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/types"
)

// Client talks to the dashboard API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Health checks /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

// Facets fetches the dropdown values.
func (c *Client) Facets(ctx context.Context) (types.FacetOptions, error) {
	var out types.FacetOptions
	err := c.get(ctx, "/api/facets", &out)
	return out, err
}

// Stats fetches /stats.
func (c *Client) Stats(ctx context.Context) (types.Stats, error) {
	var out types.Stats
	err := c.get(ctx, "/stats", &out)
	return out, err
}

// Update posts sel to /api/update.
func (c *Client) Update(ctx context.Context, sel model.Selection) (Response, error) {
	var out Response
	body, err := json.Marshal(sel)
	if err != nil {
		return out, fmt.Errorf("marshal selection: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/update", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, &out)
	return out, err
}

// Query runs the same update through the GET form.
func (c *Client) Query(ctx context.Context, sel model.Selection) (Response, error) {
	var out Response
	q := url.Values{}
	for _, f := range model.Facets() {
		for _, v := range sel.Get(f) {
			q.Add(string(f), v)
		}
	}
	err := c.get(ctx, "/api/update?"+q.Encode(), &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s: %d %s", ErrUnexpectedStatus, req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
