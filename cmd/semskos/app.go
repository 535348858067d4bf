package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semskos/config"
	"github.com/c360studio/semskos/entity"
	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/graphstore/natsgraph"
	"github.com/c360studio/semskos/graphstore/sparql"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/repository"
	"github.com/c360studio/semskos/resource"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

// App wires configuration, the graph store client and the repositories.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// Metrics
	registry *prometheus.Registry
	metrics  *repository.Metrics

	// Graph store
	client    graphstore.Client
	resources *resource.Registry

	// NATS
	embeddedServer *server.Server
	natsConn       *nats.Conn
}

// NewApp creates a new application instance. Call Connect before using repositories.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	metrics, err := repository.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	resources, err := entity.NewRegistry()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:       cfg,
		logger:    logger,
		registry:  registry,
		metrics:   metrics,
		resources: resources,
	}, nil
}

// Connect builds the graph store client for the configured driver.
func (a *App) Connect() error {
	switch a.cfg.Graph.Driver {
	case config.DriverNATS:
		if a.natsConn == nil {
			a.logger.Debug("Connecting to NATS", "url", a.cfg.NATS.URL)
			conn, err := nats.Connect(a.cfg.NATS.URL, nats.Name(appName))
			if err != nil {
				return fmt.Errorf("connect to NATS at %s: %w", a.cfg.NATS.URL, err)
			}
			a.natsConn = conn
		}
		client, err := natsgraph.New(a.natsConn,
			natsgraph.WithPrefix(a.cfg.NATS.SubjectPrefix),
			natsgraph.WithSource(appName),
			natsgraph.WithTimeout(a.cfg.Graph.Timeout),
			natsgraph.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.client = client
	default:
		client, err := a.sparqlClient()
		if err != nil {
			return err
		}
		a.client = client
	}
	return nil
}

func (a *App) sparqlClient() (*sparql.Client, error) {
	opts := []sparql.Option{
		sparql.WithTimeout(a.cfg.Graph.Timeout),
		sparql.WithLogger(a.logger),
	}
	if a.cfg.Graph.UpdateURL != "" {
		opts = append(opts, sparql.WithUpdateURL(a.cfg.Graph.UpdateURL))
	}
	return sparql.New(a.cfg.Graph.QueryURL, opts...)
}

// StartEmbeddedNATS starts an in-process NATS server and connects to it.
func (a *App) StartEmbeddedNATS() error {
	opts := &server.Options{
		Port:   -1, // Random available port
		NoLog:  true,
		NoSigs: true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return fmt.Errorf("create embedded NATS server: %w", err)
	}

	go ns.Start()

	// Wait for server to be ready
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return fmt.Errorf("embedded NATS server failed to start")
	}

	conn, err := nats.Connect(ns.ClientURL(), nats.Name(appName))
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("connect to embedded NATS: %w", err)
	}
	a.embeddedServer = ns
	a.natsConn = conn
	a.logger.Info("Embedded NATS server started", "url", ns.ClientURL())
	return nil
}

// Serve answers graph requests on NATS from the SPARQL endpoint until ctx is done.
// A non-empty metricsAddr exposes the metrics registry over HTTP.
func (a *App) Serve(ctx context.Context, metricsAddr string) error {
	if a.natsConn == nil {
		conn, err := nats.Connect(a.cfg.NATS.URL, nats.Name(appName))
		if err != nil {
			return fmt.Errorf("connect to NATS at %s: %w", a.cfg.NATS.URL, err)
		}
		a.natsConn = conn
	}

	backend, err := a.sparqlClient()
	if err != nil {
		return err
	}
	metered, err := newMeteredClient(backend, a.registry)
	if err != nil {
		return err
	}

	srv, err := natsgraph.NewServer(a.natsConn, metered, natsgraph.ServerConfig{
		Prefix:  a.cfg.NATS.SubjectPrefix,
		Queue:   a.cfg.NATS.Queue,
		Timeout: a.cfg.Graph.Timeout,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	if metricsAddr != "" {
		if err := a.registry.Register(collectors.NewGoCollector()); err != nil {
			return fmt.Errorf("register go collector: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		httpServer := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
		a.logger.Info("Serving metrics", "addr", metricsAddr)
	}

	a.logger.Info("Graph bridge ready",
		"prefix", a.cfg.NATS.SubjectPrefix,
		"query_url", a.cfg.Graph.QueryURL)
	<-ctx.Done()
	return nil
}

// Shutdown releases connections and the embedded server.
func (a *App) Shutdown() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
		a.natsConn.Close()
		a.natsConn = nil
	}

	if a.embeddedServer != nil {
		a.embeddedServer.Shutdown()
		a.embeddedServer.WaitForShutdown()
		a.embeddedServer = nil
	}
}

// Resources returns a repository rehydrating any registered entity type.
func (a *App) Resources() (*repository.Repository[resource.Resource], error) {
	return repository.New[resource.Resource](a.resources.Build, a.client, a.repositoryOptions()...)
}

// ProjectedResources returns a repository that can prune resources to a projection.
func (a *App) ProjectedResources() (*repository.Projective[resource.Resource], error) {
	return repository.NewProjective[resource.Resource](a.resources.Build, a.client, a.repositoryOptions()...)
}

// ResourcesOf returns a repository for one entity type with UUID lookup enabled.
func (a *App) ResourcesOf(t openskos.EntityType) (*repository.Repository[resource.Resource], error) {
	opts, err := a.uuidOptions(t)
	if err != nil {
		return nil, err
	}
	return repository.New[resource.Resource](a.resources.Build, a.client, opts...)
}

// Concepts returns the concept repository.
func (a *App) Concepts() (*repository.Repository[*entity.Concept], error) {
	opts, err := a.uuidOptions(openskos.EntityTypeConcept)
	if err != nil {
		return nil, err
	}
	return repository.New[*entity.Concept](entity.ConceptFromTriples, a.client, opts...)
}

// Labels returns the SKOS-XL label repository.
func (a *App) Labels() (*repository.Repository[*entity.Label], error) {
	opts, err := a.uuidOptions(openskos.EntityTypeLabel)
	if err != nil {
		return nil, err
	}
	return repository.New[*entity.Label](entity.LabelFromTriples, a.client, opts...)
}

// IRIFactory returns the identifier factory of an entity type.
func (a *App) IRIFactory(t openskos.EntityType) (*rdf.IRIFactory, error) {
	ns, ok := a.cfg.Namespace(t)
	if !ok {
		return nil, fmt.Errorf("no namespace configured for %s", t)
	}
	return rdf.NewIRIFactory(ns)
}

func (a *App) repositoryOptions() []repository.Option {
	return []repository.Option{
		repository.WithLogger(a.logger),
		repository.WithMetrics(a.metrics),
	}
}

func (a *App) uuidOptions(t openskos.EntityType) ([]repository.Option, error) {
	class, ok := openskos.ClassIRIs[t]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", t)
	}
	iris, err := a.IRIFactory(t)
	if err != nil {
		return nil, err
	}
	return append(a.repositoryOptions(),
		repository.WithUUIDLookup(rdf.MustIri(class), rdf.MustIri(openskos.OpenSkosUUID), iris)), nil
}

// meteredClient counts graph store calls by operation and outcome.
type meteredClient struct {
	next     graphstore.Client
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMeteredClient(next graphstore.Client, reg prometheus.Registerer) (*meteredClient, error) {
	m := &meteredClient{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semskos",
			Subsystem: "graph",
			Name:      "requests_total",
			Help:      "Graph store requests served by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "semskos",
			Subsystem: "graph",
			Name:      "request_duration_seconds",
			Help:      "Graph store request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register graph metrics: %w", err)
		}
	}
	return m, nil
}

func (m *meteredClient) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(op, status).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *meteredClient) Describe(ctx context.Context, q string) ([]rdf.Triple, error) {
	start := time.Now()
	triples, err := m.next.Describe(ctx, q)
	m.observe("describe", start, err)
	return triples, err
}

func (m *meteredClient) Insert(ctx context.Context, triples []rdf.Triple) error {
	start := time.Now()
	err := m.next.Insert(ctx, triples)
	m.observe("insert", start, err)
	return err
}

func (m *meteredClient) DeleteSubject(ctx context.Context, iri rdf.Iri) error {
	start := time.Now()
	err := m.next.DeleteSubject(ctx, iri)
	m.observe("delete", start, err)
	return err
}
