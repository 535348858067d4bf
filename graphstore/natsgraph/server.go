package natsgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/rdf"
)

// Server answers natsgraph requests from a backing graph store.
type Server struct {
	nc      *nats.Conn
	backend graphstore.Client
	prefix  string
	queue   string
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.Mutex
	subs []*nats.Subscription
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// Prefix of the request subjects. Defaults to DefaultPrefix.
	Prefix string
	// Queue group shared by server replicas. Empty subscribes without a group.
	Queue string
	// Timeout bounds each backend call. Defaults to 30s.
	Timeout time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewServer creates a server. Call Start to subscribe.
func NewServer(nc *nats.Conn, backend graphstore.Client, cfg ServerConfig) (*Server, error) {
	if nc == nil || backend == nil {
		return nil, fmt.Errorf("create nats graph server: connection and backend are required")
	}
	s := &Server{
		nc:      nc,
		backend: backend,
		prefix:  strings.TrimSuffix(cfg.Prefix, "."),
		queue:   cfg.Queue,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
	if s.prefix == "" {
		s.prefix = DefaultPrefix
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Start subscribes to the describe, delete and ingest subjects.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) > 0 {
		return fmt.Errorf("nats graph server already started")
	}

	handlers := map[string]nats.MsgHandler{
		s.prefix + describeSuffix: s.handleDescribe,
		s.prefix + deleteSuffix:   s.handleDelete,
		IngestSubject:             s.handleIngest,
	}
	for subject, handler := range handlers {
		sub, err := s.subscribe(subject, handler)
		if err != nil {
			s.unsubscribe()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}
	if err := s.nc.Flush(); err != nil {
		s.unsubscribe()
		return fmt.Errorf("flush subscriptions: %w", err)
	}
	s.logger.Info("NATS graph server started", "prefix", s.prefix, "queue", s.queue)
	return nil
}

func (s *Server) subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if s.queue == "" {
		return s.nc.Subscribe(subject, handler)
	}
	return s.nc.QueueSubscribe(subject, s.queue, handler)
}

// Stop removes the subscriptions.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribe()
}

func (s *Server) unsubscribe() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn("Failed to unsubscribe", "subject", sub.Subject, "error", err)
		}
	}
	s.subs = nil
}

func (s *Server) handleDescribe(msg *nats.Msg) {
	var req describeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respond(msg, describeResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	triples, err := s.backend.Describe(ctx, req.Query)
	if err != nil {
		s.logger.Warn("Describe failed", "error", err)
		s.respond(msg, describeResponse{Error: err.Error()})
		return
	}
	doc, err := graphstore.FormatNTriples(triples)
	if err != nil {
		s.respond(msg, describeResponse{Error: err.Error()})
		return
	}
	s.respond(msg, describeResponse{Triples: doc})
}

func (s *Server) handleDelete(msg *nats.Msg) {
	var req deleteRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.respond(msg, deleteResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	iri, err := rdf.NewIri(req.Subject)
	if err != nil {
		s.respond(msg, deleteResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.backend.DeleteSubject(ctx, iri); err != nil {
		s.logger.Warn("Delete failed", "subject", req.Subject, "error", err)
		s.respond(msg, deleteResponse{Error: err.Error()})
		return
	}
	s.respond(msg, deleteResponse{})
}

// handleIngest writes published entities through to the backend. Ingest is
// fire-and-forget, so failures are only logged.
func (s *Server) handleIngest(msg *nats.Msg) {
	var ingest EntityIngestMessage
	if err := json.Unmarshal(msg.Data, &ingest); err != nil {
		s.logger.Warn("Invalid ingest message", "error", err)
		return
	}
	triples := make([]rdf.Triple, 0, len(ingest.Triples))
	for _, mt := range ingest.Triples {
		t, err := fromMessageTriple(mt)
		if err != nil {
			s.logger.Warn("Dropping invalid ingest triple", "entity", ingest.ID, "error", err)
			continue
		}
		triples = append(triples, t)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.backend.Insert(ctx, triples); err != nil {
		s.logger.Warn("Ingest failed", "entity", ingest.ID, "error", err)
	}
}

func (s *Server) respond(msg *nats.Msg, resp any) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Warn("Failed to send response", "subject", msg.Subject, "error", err)
	}
}
