package resource

import (
	"fmt"

	"github.com/c360studio/semskos/rdf"
)

// Factory rebuilds one typed entity from the triples grouped under its subject.
type Factory func(subject rdf.Iri, triples []rdf.Triple) Resource

type registration struct {
	typeIRI rdf.Iri
	vocab   *Vocabulary
	factory Factory
}

// Registry is a closed mapping from type IRI to entity factory. It replaces
// runtime type discovery: every type is registered explicitly and validated
// once at startup.
type Registry struct {
	typePredicate rdf.Iri
	byType        map[string]registration
	order         []rdf.Iri
	untyped       *Vocabulary
}

// NewRegistry creates an empty registry that dispatches on typePredicate.
func NewRegistry(typePredicate rdf.Iri) *Registry {
	return &Registry{
		typePredicate: typePredicate,
		byType:        make(map[string]registration),
		untyped:       MustVocabulary("untyped", Field{Name: "type", Predicate: typePredicate}),
	}
}

// Register binds a type IRI to its vocabulary and factory.
func (r *Registry) Register(typeIRI rdf.Iri, vocab *Vocabulary, factory Factory) error {
	if typeIRI.IsZero() || vocab == nil || factory == nil {
		return fmt.Errorf("register %q: type, vocabulary and factory are required", typeIRI)
	}
	if _, dup := r.byType[typeIRI.URI()]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateType, typeIRI)
	}
	r.byType[typeIRI.URI()] = registration{typeIRI: typeIRI, vocab: vocab, factory: factory}
	r.order = append(r.order, typeIRI)
	return nil
}

// Validate checks that the registry is usable: at least one type, and every
// vocabulary maps the type predicate so the type slot survives reconstruction.
func (r *Registry) Validate() error {
	if len(r.order) == 0 {
		return fmt.Errorf("%w: registry has no types", ErrInvalidVocabulary)
	}
	for _, typeIRI := range r.order {
		reg := r.byType[typeIRI.URI()]
		if !reg.vocab.Has(r.typePredicate) {
			return fmt.Errorf("%w: %s does not map type predicate %s",
				ErrInvalidVocabulary, reg.vocab.Name(), r.typePredicate)
		}
	}
	return nil
}

// TypePredicate returns the predicate used for dispatch.
func (r *Registry) TypePredicate() rdf.Iri { return r.typePredicate }

// Types returns the registered type IRIs in registration order.
func (r *Registry) Types() []rdf.Iri {
	out := make([]rdf.Iri, len(r.order))
	copy(out, r.order)
	return out
}

// Vocabulary returns the vocabulary registered for a type.
func (r *Registry) Vocabulary(typeIRI rdf.Iri) (*Vocabulary, bool) {
	reg, ok := r.byType[typeIRI.URI()]
	return reg.vocab, ok
}

// Lookup returns the factory registered for a type.
func (r *Registry) Lookup(typeIRI rdf.Iri) (Factory, bool) {
	reg, ok := r.byType[typeIRI.URI()]
	return reg.factory, ok
}

// Build dispatches on the first registered type found among the subject's type
// triples. Subjects with no registered type become an untyped entity that keeps
// only its type triples.
func (r *Registry) Build(subject rdf.Iri, triples []rdf.Triple) Resource {
	for _, t := range triples {
		if !t.Subject.Equal(subject) || !t.Predicate.Equal(r.typePredicate) {
			continue
		}
		typeIRI, ok := t.ObjectIRI()
		if !ok {
			continue
		}
		if reg, ok := r.byType[typeIRI.URI()]; ok {
			return reg.factory(subject, triples)
		}
	}
	return FromTriples(subject, triples, r.untyped)
}
