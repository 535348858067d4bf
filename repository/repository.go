// Package repository rehydrates typed entities from graph-store query results.
//
// A Repository is bound to one entity type through a factory. Every read builds a
// DESCRIBE query, sends it through the graph-store client, groups the flat triple
// stream by subject and calls the factory once per group. Lookup misses are
// (zero, false, nil); malformed input and upstream failures are errors.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/query"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Factory rebuilds one entity from the triples of its subject.
type Factory[T resource.Resource] func(subject rdf.Iri, triples []rdf.Triple) T

// Operation labels used in logs and metrics.
const (
	opAllOfType   = "all_of_type"
	opFindByIri   = "find_by_iri"
	opFindMany    = "find_many"
	opFindBy      = "find_by"
	opGetByUUID   = "get_by_uuid"
	opInsert      = "insert"
	opDelete      = "delete"
	opProjectMany = "find_many_projected"
)

type uuidLookup struct {
	typ       rdf.Iri
	predicate rdf.Iri
	iris      *rdf.IRIFactory
}

type settings struct {
	builder *query.Builder
	logger  *slog.Logger
	metrics *Metrics
	uuid    *uuidLookup
}

// Option configures a Repository.
type Option func(*settings)

// WithBuilder sets the query builder. Defaults to a builder using rdf:type.
func WithBuilder(b *query.Builder) Option {
	return func(s *settings) { s.builder = b }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics records operations on m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithUUIDLookup enables GetByUuid. Subjects are first looked up at the IRI the
// factory mints for the id, then by typ and a predicate holding the id. A nil
// factory skips the first step.
func WithUUIDLookup(typ, predicate rdf.Iri, iris *rdf.IRIFactory) Option {
	return func(s *settings) {
		s.uuid = &uuidLookup{typ: typ, predicate: predicate, iris: iris}
	}
}

// Repository reads and writes one entity type.
type Repository[T resource.Resource] struct {
	factory Factory[T]
	client  graphstore.Client
	builder *query.Builder
	logger  *slog.Logger
	metrics *Metrics
	uuid    *uuidLookup
}

// New creates a repository.
func New[T resource.Resource](factory Factory[T], client graphstore.Client, opts ...Option) (*Repository[T], error) {
	if factory == nil {
		return nil, fmt.Errorf("create repository: nil factory")
	}
	if client == nil {
		return nil, fmt.Errorf("create repository: nil graph store client")
	}
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.builder == nil {
		s.builder = query.NewBuilder(query.DefaultConfig())
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return &Repository[T]{
		factory: factory,
		client:  client,
		builder: s.builder,
		logger:  s.logger,
		metrics: s.metrics,
		uuid:    s.uuid,
	}, nil
}

// Builder returns the query builder.
func (r *Repository[T]) Builder() *query.Builder { return r.builder }

// AllOfType lists entities of a type, paginated and optionally filtered.
func (r *Repository[T]) AllOfType(ctx context.Context, typ rdf.Iri, offset, limit int, filters []query.Filter) ([]T, error) {
	q := r.builder.DescribeAllOfType(typ, offset, limit, filters)
	triples, err := r.describe(ctx, opAllOfType, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", typ, err)
	}
	return r.rehydrate(opAllOfType, triples), nil
}

// FindByIri returns the entity for iri. An empty result is a miss, not an error.
func (r *Repository[T]) FindByIri(ctx context.Context, iri rdf.Iri) (T, bool, error) {
	var zero T
	triples, err := r.describe(ctx, opFindByIri, r.builder.DescribeResource(iri))
	if err != nil {
		return zero, false, fmt.Errorf("describe resource %s: %w", iri, err)
	}
	e, ok := r.pick(opFindByIri, triples, iri)
	return e, ok, nil
}

// FindManyByIriList fetches several subjects in one query. Subjects without
// triples are absent from the result. An empty list returns an empty map
// without querying.
func (r *Repository[T]) FindManyByIriList(ctx context.Context, iris []rdf.Iri) (map[string]T, error) {
	triples, err := r.describeMany(ctx, opFindMany, iris)
	if err != nil {
		return nil, err
	}
	return r.index(opFindMany, triples), nil
}

// FindBy lists entities of a type holding value for predicate.
func (r *Repository[T]) FindBy(ctx context.Context, typ, predicate rdf.Iri, value rdf.Term) ([]T, error) {
	q := r.builder.DescribeByTypeAndPredicate(typ, predicate, value)
	triples, err := r.describe(ctx, opFindBy, q)
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", typ, predicate, err)
	}
	return r.rehydrate(opFindBy, triples), nil
}

// FindOneBy returns the first entity FindBy would return.
func (r *Repository[T]) FindOneBy(ctx context.Context, typ, predicate rdf.Iri, value rdf.Term) (T, bool, error) {
	var zero T
	found, err := r.FindBy(ctx, typ, predicate, value)
	if err != nil {
		return zero, false, err
	}
	if len(found) == 0 {
		return zero, false, nil
	}
	return found[0], true, nil
}

// GetByUuid resolves an entity by its UUID. The indexed lookup runs first; the
// predicate lookup runs only when it finds nothing. More than one matching
// subject is treated as a miss.
func (r *Repository[T]) GetByUuid(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if r.uuid == nil {
		return zero, false, ErrUUIDLookupDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return zero, false, fmt.Errorf("%w: %q: %w", ErrInvalidUUID, id, err)
	}

	if r.uuid.iris != nil {
		iri, err := r.uuid.iris.Make(id)
		if err != nil {
			return zero, false, fmt.Errorf("mint iri for %s: %w", id, err)
		}
		triples, err := r.describe(ctx, opGetByUUID, r.builder.DescribeResource(iri))
		if err != nil {
			return zero, false, fmt.Errorf("describe uuid %s: %w", id, err)
		}
		if e, ok := r.pick(opGetByUUID, triples, iri); ok {
			return e, true, nil
		}
	}

	q := r.builder.DescribeByTypeAndPredicate(r.uuid.typ, r.uuid.predicate, rdf.NewString(id))
	triples, err := r.describe(ctx, opGetByUUID, q)
	if err != nil {
		return zero, false, fmt.Errorf("find uuid %s: %w", id, err)
	}
	order, groups := GroupTriples(triples)
	switch len(order) {
	case 0:
		return zero, false, nil
	case 1:
		subject := order[0]
		r.metrics.recordResult(opGetByUUID, len(triples), 1)
		return r.factory(subject, groups[subject.URI()]), true, nil
	default:
		r.logger.Warn("Ambiguous uuid match, refusing to pick one",
			"uuid", id, "subjects", len(order))
		return zero, false, nil
	}
}

// InsertTriples passes triples to the store unchanged.
func (r *Repository[T]) InsertTriples(ctx context.Context, triples []rdf.Triple) error {
	start := time.Now()
	err := r.client.Insert(ctx, triples)
	r.metrics.recordQuery(opInsert, start, err)
	if err != nil {
		return fmt.Errorf("insert %d triples: %w", len(triples), err)
	}
	return nil
}

// DeleteSubject removes every triple about iri.
func (r *Repository[T]) DeleteSubject(ctx context.Context, iri rdf.Iri) error {
	start := time.Now()
	err := r.client.DeleteSubject(ctx, iri)
	r.metrics.recordQuery(opDelete, start, err)
	if err != nil {
		return fmt.Errorf("delete subject %s: %w", iri, err)
	}
	return nil
}

func (r *Repository[T]) describe(ctx context.Context, op, q string) ([]rdf.Triple, error) {
	start := time.Now()
	triples, err := r.client.Describe(ctx, q)
	r.metrics.recordQuery(op, start, err)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Graph query executed",
		"operation", op,
		"triples", len(triples),
		"duration", time.Since(start))
	return triples, nil
}

func (r *Repository[T]) describeMany(ctx context.Context, op string, iris []rdf.Iri) ([]rdf.Triple, error) {
	if len(iris) == 0 {
		return nil, nil
	}
	q, err := r.builder.DescribeResources(iris)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	triples, err := r.describe(ctx, op, q)
	if err != nil {
		return nil, fmt.Errorf("describe %d resources: %w", len(iris), err)
	}
	return triples, nil
}

// rehydrate builds one entity per subject group, in order of first appearance.
func (r *Repository[T]) rehydrate(op string, triples []rdf.Triple) []T {
	order, groups := GroupTriples(triples)
	out := make([]T, 0, len(order))
	for _, subject := range order {
		out = append(out, r.factory(subject, groups[subject.URI()]))
	}
	r.metrics.recordResult(op, len(triples), len(out))
	return out
}

// index builds one entity per subject group, keyed by subject.
func (r *Repository[T]) index(op string, triples []rdf.Triple) map[string]T {
	order, groups := GroupTriples(triples)
	out := make(map[string]T, len(order))
	for _, subject := range order {
		key := subject.URI()
		out[key] = r.factory(subject, groups[key])
	}
	r.metrics.recordResult(op, len(triples), len(out))
	return out
}

// pick builds the entity of one subject out of a DESCRIBE result, which may
// also carry triples about other subjects.
func (r *Repository[T]) pick(op string, triples []rdf.Triple, subject rdf.Iri) (T, bool) {
	var zero T
	_, groups := GroupTriples(triples)
	group, ok := groups[subject.URI()]
	if !ok {
		return zero, false
	}
	r.metrics.recordResult(op, len(triples), 1)
	return r.factory(subject, group), true
}
