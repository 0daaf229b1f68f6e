// Package drkube talks to the DrKube query service: one GET per question,
// plain text back.
package drkube

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	derrors "github.com/drkube/drkube/internal/errors"
	"github.com/drkube/drkube/internal/logger"
)

const (
	// IssuePath is the service route that answers questions.
	IssuePath = "/issue"

	// QueryParam carries the question text.
	QueryParam = "q"
)

// Asker sends a question and returns the raw reply text.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Client is an Asker backed by the DrKube HTTP service.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a client for the service at endpoint (e.g. http://localhost:8091).
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask issues GET {endpoint}/issue?q=<question>. The question is sent as typed,
// untrimmed. Any status code is accepted and the body is returned as text.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	reqURL, err := IssueURL(c.endpoint, question)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", derrors.NewEndpointError(c.endpoint, err)
	}

	logger.Debug("GET %s", reqURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", derrors.NewRequestError("send", reqURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", derrors.NewRequestError("read", reqURL, err)
	}

	logger.Debug("DrKube replied %d with %d bytes", resp.StatusCode, len(body))
	return string(body), nil
}

// IssueURL builds the request URL for question against endpoint.
func IssueURL(endpoint, question string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", derrors.NewEndpointError(endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", derrors.NewEndpointError(endpoint, derrors.ErrInvalidInput)
	}
	return strings.TrimRight(endpoint, "/") + IssuePath + "?" + QueryParam + "=" + EncodeComponent(question), nil
}

// EncodeComponent percent-encodes s for use as a single query value.
// Spaces become %20 rather than '+'.
func EncodeComponent(s string) string {
	// QueryEscape already encodes a literal '+' as %2B, so every '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
