package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports a 2xx status.
func (r ResponseInfo) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client wraps requests to the contest backend.
type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		headers: make(map[string]string),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHeader adds a header sent with every request, e.g. an auth token.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *Client) Do(ctx context.Context, method, path, contentType string, body io.Reader) (ResponseInfo, error) {
	var info ResponseInfo

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return info, fmt.Errorf("build request failed: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, fmt.Errorf("read response body failed: %w", err)
	}
	info.Body = bodyBytes
	return info, nil
}

func (c *Client) Get(ctx context.Context, path string) (ResponseInfo, error) {
	return c.Do(ctx, http.MethodGet, path, "", nil)
}

// PostJSON sends raw, already-encoded JSON.
func (c *Client) PostJSON(ctx context.Context, path string, body []byte) (ResponseInfo, error) {
	return c.Do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
}

// Post sends body with an explicit content type, e.g. a multipart form.
func (c *Client) Post(ctx context.Context, path, contentType string, body []byte) (ResponseInfo, error) {
	return c.Do(ctx, http.MethodPost, path, contentType, bytes.NewReader(body))
}

// GetJSON decodes a 2xx response into out. Other statuses are returned as
// *StatusError.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	info, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if !info.OK() {
		return &StatusError{StatusCode: info.StatusCode, Body: info.Body}
	}
	if err := json.Unmarshal(info.Body, out); err != nil {
		return fmt.Errorf("decode %s response failed: %w", path, err)
	}
	return nil
}

// StatusError is a non-2xx reply.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
