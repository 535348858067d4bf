package resource

import (
	"fmt"

	"github.com/c360studio/semskos/rdf"
)

// Resource is the public surface every entity type exposes.
type Resource interface {
	IRI() rdf.Iri
	Triples() []rdf.Triple
}

// Mapped is a resource backed by a generic Entity. Typed entities embed *Entity
// and satisfy it through the promoted Mapping method.
type Mapped interface {
	Resource
	Mapping() *Entity
}

// Entity is the generic mapper between a subject's triples and its vocabulary.
//
// The triple list is the source of truth; the slot table caches the last object
// written per predicate and is keyed by predicate IRI. Every mutation updates both
// together, except ReplaceTriple, which leaves the entity stale until Reindex.
type Entity struct {
	subject rdf.Iri
	origin  rdf.Iri
	vocab   *Vocabulary
	triples []rdf.Triple
	slots   map[string]rdf.Term
	stale   bool
}

var (
	_ Mapped         = (*Entity)(nil)
	_ rdf.Identified = (*Entity)(nil)
	_ rdf.Sourced    = (*Entity)(nil)
)

// CreateEmpty returns an entity with no triples and all slots empty.
func CreateEmpty(subject rdf.Iri, vocab *Vocabulary) *Entity {
	return &Entity{
		subject: subject,
		vocab:   vocab,
		slots:   make(map[string]rdf.Term, vocab.Len()),
	}
}

// FromTriples rebuilds an entity from a triple batch in one pass.
// Triples about other subjects or with predicates outside the vocabulary are dropped.
func FromTriples(subject rdf.Iri, triples []rdf.Triple, vocab *Vocabulary) *Entity {
	e := CreateEmpty(subject, vocab)
	e.triples = make([]rdf.Triple, 0, len(triples))
	for _, t := range triples {
		if !t.Subject.Equal(subject) || !vocab.Has(t.Predicate) || t.Object == nil {
			continue
		}
		e.triples = append(e.triples, t)
		e.slots[t.Predicate.URI()] = t.Object
	}
	return e
}

// IRI returns the entity subject.
func (e *Entity) IRI() rdf.Iri { return e.subject }

// Source returns the subject the entity was first mapped under. It differs from
// IRI only after Rebase.
func (e *Entity) Source() rdf.Iri {
	if e.origin.IsZero() {
		return e.subject
	}
	return e.origin
}

// Kind implements rdf.Term so an entity can be inlined as a triple object.
func (e *Entity) Kind() rdf.TermKind { return rdf.KindResource }

// String returns the subject identifier.
func (e *Entity) String() string { return e.subject.URI() }

// Mapping returns the entity itself.
func (e *Entity) Mapping() *Entity { return e }

// Vocabulary returns the vocabulary the entity is mapped with.
func (e *Entity) Vocabulary() *Vocabulary { return e.vocab }

// Len returns the number of retained triples.
func (e *Entity) Len() int { return len(e.triples) }

// Triples returns a copy of the retained triples in their original order.
func (e *Entity) Triples() []rdf.Triple {
	out := make([]rdf.Triple, len(e.triples))
	copy(out, e.triples)
	return out
}

// AddProperty appends a triple for a vocabulary predicate and updates its slot.
func (e *Entity) AddProperty(predicate rdf.Iri, term rdf.Term) error {
	if err := e.check(predicate, term); err != nil {
		return err
	}
	e.triples = append(e.triples, rdf.NewTriple(e.subject, predicate, term))
	e.slots[predicate.URI()] = term
	return nil
}

// AddField is AddProperty addressed by field name.
func (e *Entity) AddField(name string, term rdf.Term) error {
	predicate, err := e.predicateFor(name)
	if err != nil {
		return err
	}
	return e.AddProperty(predicate, term)
}

// SetProperty makes term the only object for predicate. The first existing triple
// keeps its position; later duplicates are removed.
func (e *Entity) SetProperty(predicate rdf.Iri, term rdf.Term) error {
	if err := e.check(predicate, term); err != nil {
		return err
	}
	replaced := false
	kept := e.triples[:0]
	for _, t := range e.triples {
		if !t.Predicate.Equal(predicate) {
			kept = append(kept, t)
			continue
		}
		if !replaced {
			kept = append(kept, rdf.NewTriple(e.subject, predicate, term))
			replaced = true
		}
	}
	e.triples = kept
	if !replaced {
		e.triples = append(e.triples, rdf.NewTriple(e.subject, predicate, term))
	}
	e.slots[predicate.URI()] = term
	return nil
}

// SetField is SetProperty addressed by field name.
func (e *Entity) SetField(name string, term rdf.Term) error {
	predicate, err := e.predicateFor(name)
	if err != nil {
		return err
	}
	return e.SetProperty(predicate, term)
}

// Property returns the slot for a predicate.
func (e *Entity) Property(predicate rdf.Iri) (rdf.Term, bool) {
	if e.stale {
		e.Reindex()
	}
	t, ok := e.slots[predicate.URI()]
	return t, ok
}

// Field returns the slot for a field name.
func (e *Entity) Field(name string) (rdf.Term, bool) {
	predicate, ok := e.vocab.Predicate(name)
	if !ok {
		return nil, false
	}
	return e.Property(predicate)
}

// Values returns every object stored for a field, in triple order. The slot
// only keeps the last one.
func (e *Entity) Values(name string) []rdf.Term {
	predicate, ok := e.vocab.Predicate(name)
	if !ok {
		return nil
	}
	var out []rdf.Term
	for _, t := range e.triples {
		if t.Predicate.Equal(predicate) {
			out = append(out, t.Object)
		}
	}
	return out
}

// Literal returns a field's slot when it holds a literal.
func (e *Entity) Literal(name string) (rdf.Literal, bool) {
	t, ok := e.Field(name)
	if !ok {
		return rdf.Literal{}, false
	}
	lit, ok := t.(rdf.Literal)
	return lit, ok
}

// Reference returns the identifier held by a field's slot, inlined or not.
func (e *Entity) Reference(name string) (rdf.Iri, bool) {
	t, ok := e.Field(name)
	if !ok {
		return rdf.Iri{}, false
	}
	return rdf.IRIOf(t)
}

// ReplaceTriple overwrites the triple at index. The slot table is not touched:
// callers must Reindex before the entity is read again.
func (e *Entity) ReplaceTriple(index int, t rdf.Triple) error {
	if index < 0 || index >= len(e.triples) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(e.triples))
	}
	if !t.Subject.Equal(e.subject) {
		return fmt.Errorf("%w: %s is not %s", ErrSubjectMismatch, t.Subject, e.subject)
	}
	if err := e.check(t.Predicate, t.Object); err != nil {
		return err
	}
	e.triples[index] = t
	e.stale = true
	return nil
}

// Reindex rebuilds the slot table from the triple list.
func (e *Entity) Reindex() {
	clear(e.slots)
	for _, t := range e.triples {
		e.slots[t.Predicate.URI()] = t.Object
	}
	e.stale = false
}

// Stale reports whether a ReplaceTriple is waiting for Reindex.
func (e *Entity) Stale() bool { return e.stale }

// Clone returns an independent copy. Inlined entity objects are cloned too, so a
// clone never aliases another entity's state.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		subject: e.subject,
		origin:  e.origin,
		vocab:   e.vocab,
		triples: make([]rdf.Triple, len(e.triples)),
		slots:   make(map[string]rdf.Term, len(e.slots)),
	}
	for i, t := range e.triples {
		if inner, ok := t.Object.(*Entity); ok {
			t.Object = inner.Clone()
		}
		c.triples[i] = t
	}
	c.Reindex()
	return c
}

// Rebase moves the entity and all of its triples to a new subject.
// Source keeps reporting the subject it was mapped under.
func (e *Entity) Rebase(subject rdf.Iri) {
	if e.origin.IsZero() {
		e.origin = e.subject
	}
	e.subject.SetURI(subject.URI())
	for i := range e.triples {
		e.triples[i].Subject = e.subject
	}
}

func (e *Entity) predicateFor(name string) (rdf.Iri, error) {
	predicate, ok := e.vocab.Predicate(name)
	if !ok {
		return rdf.Iri{}, fmt.Errorf("%w: field %q for %s", ErrUnknownProperty, name, e.vocab.Name())
	}
	return predicate, nil
}

func (e *Entity) check(predicate rdf.Iri, term rdf.Term) error {
	if !e.vocab.Has(predicate) {
		return &UnknownPropertyError{Vocabulary: e.vocab.Name(), Predicate: predicate}
	}
	if term == nil {
		return &rdf.TypeMismatchError{Want: "term", Got: term}
	}
	return nil
}
