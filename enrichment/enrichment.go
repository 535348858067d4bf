// Package enrichment inlines referenced entities into the triples that point at
// them, with one batched fetch per call.
//
// Enrich scans the caller's entities for triples whose predicate is to be
// enriched and whose object is a plain identifier, fetches every distinct target
// in one FindManyByIriList call, and replaces each originating triple with a
// clone of the fetched target. The clone is rebased onto the originating subject
// and its type slot is set to the originating predicate, so it reads as an inline
// value of that triple. Targets the fetch did not return are left as references.
//
// Enrich mutates the entities it is given. A single list must not be enriched
// from two goroutines at once.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Fetcher batch-loads entities by identifier. Repositories satisfy it.
type Fetcher[S resource.Mapped] interface {
	FindManyByIriList(ctx context.Context, iris []rdf.Iri) (map[string]S, error)
}

// coordinate locates one reference: entity index, triple index and predicate.
type coordinate struct {
	entity    int
	triple    int
	predicate rdf.Iri
}

// Enricher resolves references to entities of type S.
type Enricher[S resource.Mapped] struct {
	fetcher       Fetcher[S]
	typePredicate rdf.Iri
	logger        *slog.Logger
}

// Option configures an Enricher.
type Option func(*options)

type options struct {
	typePredicate rdf.Iri
	logger        *slog.Logger
}

// WithTypePredicate sets the slot overwritten on inlined copies. Defaults to rdf:type.
func WithTypePredicate(p rdf.Iri) Option {
	return func(o *options) { o.typePredicate = p }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an enricher fetching targets through f.
func New[S resource.Mapped](f Fetcher[S], opts ...Option) (*Enricher[S], error) {
	if f == nil {
		return nil, fmt.Errorf("create enricher: nil fetcher")
	}
	o := options{typePredicate: rdf.RDFType}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Enricher[S]{fetcher: f, typePredicate: o.typePredicate, logger: o.logger}, nil
}

// Targets converts a typed entity list for Enrich. The returned slice shares the
// entities, so enriching it enriches items.
func Targets[T resource.Mapped](items []T) []resource.Mapped {
	out := make([]resource.Mapped, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Enrich inlines the targets of predicates into entities. Nothing is fetched when
// no triple qualifies. A fetch error is returned before any entity is modified.
func (e *Enricher[S]) Enrich(ctx context.Context, predicates []rdf.Iri, entities []resource.Mapped) error {
	wanted := make(map[string]bool, len(predicates))
	for _, p := range predicates {
		wanted[p.URI()] = true
	}

	refs, coords := scan(wanted, entities)
	if len(refs) == 0 {
		return nil
	}

	fetched, err := e.fetcher.FindManyByIriList(ctx, refs)
	if err != nil {
		return fmt.Errorf("fetch %d enrichment targets: %w", len(refs), err)
	}

	touched := make(map[int]bool)
	misses := 0
	for _, ref := range refs {
		target, ok := fetched[ref.URI()]
		if !ok {
			misses++
			continue
		}
		for _, c := range coords[ref.URI()] {
			if err := e.substitute(entities[c.entity].Mapping(), c, target.Mapping()); err != nil {
				return err
			}
			touched[c.entity] = true
		}
	}

	for i := range touched {
		entities[i].Mapping().Reindex()
	}

	if misses > 0 {
		e.logger.Warn("Enrichment targets not found", "missing", misses, "requested", len(refs))
	}
	e.logger.Debug("Enriched entities",
		"entities", len(touched), "targets", len(refs)-misses)
	return nil
}

// scan collects the distinct plain identifiers referenced through wanted
// predicates, in order of first appearance, with every place they occur.
func scan(wanted map[string]bool, entities []resource.Mapped) ([]rdf.Iri, map[string][]coordinate) {
	var refs []rdf.Iri
	coords := make(map[string][]coordinate)
	for i, ent := range entities {
		for j, t := range ent.Mapping().Triples() {
			if !wanted[t.Predicate.URI()] {
				continue
			}
			// Literals and already inlined entities are skipped.
			ref, ok := t.Object.(rdf.Iri)
			if !ok {
				continue
			}
			key := ref.URI()
			if _, seen := coords[key]; !seen {
				refs = append(refs, ref)
			}
			coords[key] = append(coords[key], coordinate{entity: i, triple: j, predicate: t.Predicate})
		}
	}
	return refs, coords
}

func (e *Enricher[S]) substitute(origin *resource.Entity, c coordinate, target *resource.Entity) error {
	inline := target.Clone()
	inline.Rebase(origin.IRI())
	if err := inline.SetProperty(e.typePredicate, c.predicate); err != nil {
		e.logger.Warn("Inlined entity has no type slot",
			"vocabulary", inline.Vocabulary().Name(), "error", err)
	}
	if err := origin.ReplaceTriple(c.triple, rdf.NewTriple(origin.IRI(), c.predicate, inline)); err != nil {
		return fmt.Errorf("substitute %s in %s: %w", c.predicate, origin.IRI(), err)
	}
	return nil
}
