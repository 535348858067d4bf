package entity

import (
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Set is a publication set grouping concept schemes.
type Set struct {
	*resource.Entity
}

// NewSet creates an empty set typed openskos:Set.
func NewSet(subject rdf.Iri) *Set {
	return &Set{Entity: newTyped(subject, SetVocabulary, SetType)}
}

// SetFromTriples rebuilds a set from its subject group.
func SetFromTriples(subject rdf.Iri, triples []rdf.Triple) *Set {
	return &Set{Entity: resource.FromTriples(subject, triples, SetVocabulary)}
}

// UUID returns the openskos:uuid of the set, or "".
func (s *Set) UUID() string { return text(s.Entity, "uuid") }

// Code returns the set code.
func (s *Set) Code() string { return text(s.Entity, "code") }

// Titles returns the titles in lang, or all of them when lang is "".
func (s *Set) Titles(lang string) []string { return inLanguage(s.Entity, "title", lang) }

// AllowOAI reports whether the set may be harvested over OAI-PMH.
func (s *Set) AllowOAI() bool { return flag(s.Entity, "allowOai") }

// Publisher returns the publishing institution.
func (s *Set) Publisher() (rdf.Iri, bool) { return s.Reference("publisher") }

// ConceptBaseURI returns the namespace new concepts of the set are minted in.
func (s *Set) ConceptBaseURI() (rdf.Iri, bool) { return s.Reference("conceptBaseUri") }
