// Package sparql implements graphstore.Client over the SPARQL 1.1 protocol.
package sparql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/query"
	"github.com/c360studio/semskos/rdf"
)

const (
	// maxErrorBodySize limits the size of error response bodies.
	maxErrorBodySize = 4096

	defaultTimeout = 30 * time.Second
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sparql endpoint %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client talks to a query endpoint and an optional update endpoint.
type Client struct {
	queryURL   string
	updateURL  string
	httpClient *http.Client
	builder    *query.Builder
	logger     *slog.Logger
}

var _ graphstore.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// WithUpdateURL sets the update endpoint. Without it, writes fail.
func WithUpdateURL(u string) Option {
	return func(c *Client) { c.updateURL = u }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithBuilder sets the builder used to render updates.
func WithBuilder(b *query.Builder) Option {
	return func(c *Client) { c.builder = b }
}

// New creates a client for a query endpoint.
func New(queryURL string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(queryURL); err != nil {
		return nil, fmt.Errorf("parse query url: %w", err)
	}
	c := &Client{
		queryURL:   queryURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.builder == nil {
		c.builder = query.NewBuilder(query.DefaultConfig())
	}
	return c, nil
}

// Describe posts a DESCRIBE query and decodes the N-Triples response.
func (c *Client) Describe(ctx context.Context, q string) ([]rdf.Triple, error) {
	start := time.Now()
	resp, err := c.post(ctx, c.queryURL, "query", q, graphstore.MediaTypeNTriples)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	triples, err := graphstore.DecodeNTriples(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.logger.Debug("Describe query executed",
		"endpoint", c.queryURL,
		"triples", len(triples),
		"duration", time.Since(start))
	return triples, nil
}

// Insert posts an INSERT DATA update.
func (c *Client) Insert(ctx context.Context, triples []rdf.Triple) error {
	if len(triples) == 0 {
		return nil
	}
	return c.update(ctx, c.builder.InsertData(triples))
}

// DeleteSubject posts an update removing every triple about iri.
func (c *Client) DeleteSubject(ctx context.Context, iri rdf.Iri) error {
	return c.update(ctx, c.builder.DeleteSubject(iri))
}

func (c *Client) update(ctx context.Context, u string) error {
	if c.updateURL == "" {
		return fmt.Errorf("sparql update: no update endpoint configured")
	}
	resp, err := c.post(ctx, c.updateURL, "update", u, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) post(ctx context.Context, endpoint, field, body, accept string) (*http.Response, error) {
	form := url.Values{field: {body}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return resp, nil
}
