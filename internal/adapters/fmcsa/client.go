// Package fmcsa implements the carrier lookup ports against the FMCSA
// QCMobile-style web services.
//
// The client deliberately does not retry: upstream failures abort the whole
// verification attempt and surface to the caller, which owns retry policy.
package fmcsa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://mobile.fmcsa.dot.gov/qc/services"

// Client calls the FMCSA carrier web services. Safe for concurrent use.
type Client struct {
	session *http.Client
	webKey  string
	baseURL string
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Client)

// WithBaseURL overrides the service base URL (tests point this at httptest).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the per-call timeout. It governs both the request
// context deadline and the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(webKey string, log *zap.Logger, opts ...Option) (*Client, error) {
	if webKey == "" {
		return nil, errors.New("fmcsa web key is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		webKey:  webKey,
		baseURL: defaultBaseURL,
		timeout: 10 * time.Second,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session.Timeout = c.timeout

	return c, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("webKey", c.webKey)
	req.URL.RawQuery = q.Encode()

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// getJSON issues one GET under the per-call timeout and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// isNotFound reports whether the upstream answered 404 for the resource.
func isNotFound(err error) bool {
	var he *httpStatusError
	return errors.As(err, &he) && he.Code == http.StatusNotFound
}
