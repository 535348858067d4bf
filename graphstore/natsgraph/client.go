// Package natsgraph implements graphstore.Client over NATS request/reply.
//
// Describe queries are requests on "<prefix>.query.describe" answered with an
// N-Triples document. Inserts are published to graph.ingest.entity as one
// semstreams ingest message per subject. Deletes are requests on
// "<prefix>.mutation.delete". Server answers the same subjects from any other
// graphstore.Client, so a NATS deployment can front a SPARQL store.
package natsgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/rdf"
)

// DefaultPrefix is the subject prefix used when none is configured.
const DefaultPrefix = "semskos.graph"

const (
	defaultSource  = "semskos"
	defaultTimeout = 30 * time.Second
)

// Client sends graph operations over a NATS connection it does not own.
type Client struct {
	nc      *nats.Conn
	prefix  string
	source  string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

var _ graphstore.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithPrefix sets the subject prefix.
func WithPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = strings.TrimSuffix(prefix, ".") }
}

// WithSource sets the source recorded on ingested triples.
func WithSource(source string) Option {
	return func(c *Client) { c.source = source }
}

// WithTimeout bounds requests whose context carries no deadline. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client on an established connection.
func New(nc *nats.Conn, opts ...Option) (*Client, error) {
	if nc == nil {
		return nil, fmt.Errorf("create nats graph client: nil connection")
	}
	c := &Client{
		nc:      nc,
		prefix:  DefaultPrefix,
		source:  defaultSource,
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	return c, nil
}

// Describe requests a DESCRIBE query. The request is bounded by ctx, or by the
// client timeout when ctx has no deadline.
func (c *Client) Describe(ctx context.Context, q string) ([]rdf.Triple, error) {
	subject := c.prefix + describeSuffix
	var resp describeResponse
	if err := c.request(ctx, subject, describeRequest{Query: q}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &RemoteError{Subject: subject, Message: resp.Error}
	}
	triples, err := graphstore.DecodeNTriples(strings.NewReader(resp.Triples))
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.logger.Debug("Describe request answered", "subject", subject, "triples", len(triples))
	return triples, nil
}

// Insert publishes the triples grouped by subject, in order of first appearance.
func (c *Client) Insert(ctx context.Context, triples []rdf.Triple) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	now := c.now()
	correlation := uuid.NewString()

	var order []string
	bySubject := make(map[string]*EntityIngestMessage)
	for _, t := range triples {
		key := t.Subject.URI()
		msg, ok := bySubject[key]
		if !ok {
			msg = &EntityIngestMessage{ID: key, UpdatedAt: now}
			bySubject[key] = msg
			order = append(order, key)
		}
		msg.Triples = append(msg.Triples, toMessageTriple(t, c.source, correlation, now))
	}

	for _, key := range order {
		data, err := json.Marshal(bySubject[key])
		if err != nil {
			return fmt.Errorf("marshal ingest message: %w", err)
		}
		if err := c.nc.Publish(IngestSubject, data); err != nil {
			return fmt.Errorf("publish entity %s: %w", key, err)
		}
	}
	if len(order) > 0 {
		if err := c.nc.Flush(); err != nil {
			return fmt.Errorf("flush ingest messages: %w", err)
		}
	}
	c.logger.Debug("Published entities for ingestion",
		"entities", len(order), "triples", len(triples), "correlation", correlation)
	return nil
}

// DeleteSubject requests removal of every triple about iri.
func (c *Client) DeleteSubject(ctx context.Context, iri rdf.Iri) error {
	subject := c.prefix + deleteSuffix
	var resp deleteResponse
	if err := c.request(ctx, subject, deleteRequest{Subject: iri.URI()}, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return &RemoteError{Subject: subject, Message: resp.Error}
	}
	return nil
}

func (c *Client) request(ctx context.Context, subject string, req, resp any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	msg, err := c.nc.RequestWithContext(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("request %s: %w", subject, err)
	}
	if err := json.Unmarshal(msg.Data, resp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
