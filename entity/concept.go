package entity

import (
	"time"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Concept is a SKOS concept.
type Concept struct {
	*resource.Entity
}

// NewConcept creates an empty concept typed skos:Concept.
func NewConcept(subject rdf.Iri) *Concept {
	return &Concept{Entity: newTyped(subject, ConceptVocabulary, ConceptType)}
}

// ConceptFromTriples rebuilds a concept from its subject group.
func ConceptFromTriples(subject rdf.Iri, triples []rdf.Triple) *Concept {
	return &Concept{Entity: resource.FromTriples(subject, triples, ConceptVocabulary)}
}

// UUID returns the openskos:uuid of the concept, or "".
func (c *Concept) UUID() string { return text(c.Entity, "uuid") }

// Notation returns the skos:notation code, or "".
func (c *Concept) Notation() string { return text(c.Entity, "notation") }

// Status returns the editorial status, e.g. "approved".
func (c *Concept) Status() string { return text(c.Entity, "status") }

// PrefLabels returns the preferred labels in lang, or all of them when lang is "".
func (c *Concept) PrefLabels(lang string) []string {
	return inLanguage(c.Entity, "prefLabel", lang)
}

// AltLabels returns the alternative labels in lang, or all of them when lang is "".
func (c *Concept) AltLabels(lang string) []string {
	return inLanguage(c.Entity, "altLabel", lang)
}

// Definitions returns the definitions in lang, or all of them when lang is "".
func (c *Concept) Definitions(lang string) []string {
	return inLanguage(c.Entity, "definition", lang)
}

// Schemes returns the concept schemes the concept is in.
func (c *Concept) Schemes() []rdf.Iri { return references(c.Entity, "inScheme") }

// Broader returns the broader concepts.
func (c *Concept) Broader() []rdf.Iri { return references(c.Entity, "broader") }

// Narrower returns the narrower concepts.
func (c *Concept) Narrower() []rdf.Iri { return references(c.Entity, "narrower") }

// Related returns the related concepts.
func (c *Concept) Related() []rdf.Iri { return references(c.Entity, "related") }

// Tenant returns the owning institution.
func (c *Concept) Tenant() (rdf.Iri, bool) { return c.Reference("tenant") }

// Modified returns the last modification time.
func (c *Concept) Modified() time.Time { return timestamp(c.Entity, "modified") }

// XLPrefLabels returns the SKOS-XL preferred labels that have been inlined by
// enrichment. Labels still held as plain references are skipped.
func (c *Concept) XLPrefLabels() []*Label {
	var out []*Label
	for _, term := range c.Values("xlPrefLabel") {
		if e, ok := term.(*resource.Entity); ok {
			out = append(out, &Label{Entity: e})
		}
	}
	return out
}
