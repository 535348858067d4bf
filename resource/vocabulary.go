package resource

import (
	"fmt"

	"github.com/c360studio/semskos/rdf"
)

// Field binds a local field name to its predicate.
type Field struct {
	Name      string
	Predicate rdf.Iri
}

// Vocabulary is the bijection between field names and predicates for one entity type.
// It is immutable once built.
type Vocabulary struct {
	name        string
	fields      []Field
	byName      map[string]rdf.Iri
	byPredicate map[string]string
}

// NewVocabulary validates the field table and builds a vocabulary.
// Empty names, empty predicates and duplicates on either side are rejected.
func NewVocabulary(name string, fields ...Field) (*Vocabulary, error) {
	v := &Vocabulary{
		name:        name,
		fields:      make([]Field, 0, len(fields)),
		byName:      make(map[string]rdf.Iri, len(fields)),
		byPredicate: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" || f.Predicate.IsZero() {
			return nil, fmt.Errorf("%w: %s: empty field name or predicate", ErrInvalidVocabulary, name)
		}
		if _, dup := v.byName[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidVocabulary, name, f.Name)
		}
		if other, dup := v.byPredicate[f.Predicate.URI()]; dup {
			return nil, fmt.Errorf("%w: %s: predicate %s bound to both %q and %q",
				ErrInvalidVocabulary, name, f.Predicate, other, f.Name)
		}
		v.byName[f.Name] = f.Predicate
		v.byPredicate[f.Predicate.URI()] = f.Name
		v.fields = append(v.fields, f)
	}
	return v, nil
}

// MustVocabulary is NewVocabulary for static tables. It panics on an invalid table.
func MustVocabulary(name string, fields ...Field) *Vocabulary {
	v, err := NewVocabulary(name, fields...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the entity type name the vocabulary describes.
func (v *Vocabulary) Name() string { return v.name }

// Len returns the number of fields.
func (v *Vocabulary) Len() int { return len(v.fields) }

// Fields returns a copy of the field table in declaration order.
func (v *Vocabulary) Fields() []Field {
	out := make([]Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// Predicate returns the predicate bound to a field name.
func (v *Vocabulary) Predicate(field string) (rdf.Iri, bool) {
	p, ok := v.byName[field]
	return p, ok
}

// FieldName returns the field name bound to a predicate.
func (v *Vocabulary) FieldName(predicate rdf.Iri) (string, bool) {
	name, ok := v.byPredicate[predicate.URI()]
	return name, ok
}

// Has reports whether the predicate is part of the vocabulary.
func (v *Vocabulary) Has(predicate rdf.Iri) bool {
	_, ok := v.byPredicate[predicate.URI()]
	return ok
}
