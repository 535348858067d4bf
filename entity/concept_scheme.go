package entity

import (
	"time"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// ConceptScheme is a SKOS concept scheme.
type ConceptScheme struct {
	*resource.Entity
}

// NewConceptScheme creates an empty scheme typed skos:ConceptScheme.
func NewConceptScheme(subject rdf.Iri) *ConceptScheme {
	return &ConceptScheme{Entity: newTyped(subject, ConceptSchemeVocabulary, ConceptSchemeType)}
}

// ConceptSchemeFromTriples rebuilds a scheme from its subject group.
func ConceptSchemeFromTriples(subject rdf.Iri, triples []rdf.Triple) *ConceptScheme {
	return &ConceptScheme{Entity: resource.FromTriples(subject, triples, ConceptSchemeVocabulary)}
}

// UUID returns the openskos:uuid of the scheme, or "".
func (s *ConceptScheme) UUID() string { return text(s.Entity, "uuid") }

// Titles returns the titles in lang, or all of them when lang is "".
func (s *ConceptScheme) Titles(lang string) []string {
	return inLanguage(s.Entity, "title", lang)
}

// TopConcepts returns the top concepts of the scheme.
func (s *ConceptScheme) TopConcepts() []rdf.Iri { return references(s.Entity, "hasTopConcept") }

// Set returns the publication set of the scheme.
func (s *ConceptScheme) Set() (rdf.Iri, bool) { return s.Reference("set") }

// Modified returns dcterms:modified, or the zero time when unset or unparsable.
func (s *ConceptScheme) Modified() time.Time { return timestamp(s.Entity, "modified") }
