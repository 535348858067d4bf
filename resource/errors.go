package resource

import (
	"errors"
	"fmt"

	"github.com/c360studio/semskos/rdf"
)

// Mapping errors.
var (
	// ErrUnknownProperty is returned when a predicate is not part of the entity's vocabulary.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrIndexOutOfRange is returned by ReplaceTriple for an index outside the triple list.
	ErrIndexOutOfRange = errors.New("triple index out of range")

	// ErrSubjectMismatch is returned when a triple about another subject is written to an entity.
	ErrSubjectMismatch = errors.New("triple subject does not match entity")

	// ErrInvalidVocabulary is returned when a field table is not a bijection.
	ErrInvalidVocabulary = errors.New("invalid vocabulary")

	// ErrDuplicateType is returned when a type IRI is registered twice.
	ErrDuplicateType = errors.New("type already registered")
)

// UnknownPropertyError names the predicate rejected by AddProperty.
type UnknownPropertyError struct {
	Vocabulary string
	Predicate  rdf.Iri
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property %s for %s", e.Predicate, e.Vocabulary)
}

func (e *UnknownPropertyError) Unwrap() error { return ErrUnknownProperty }
