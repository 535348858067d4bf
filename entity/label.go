package entity

import (
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Label is a SKOS-XL label resource.
type Label struct {
	*resource.Entity
}

// NewLabel creates an empty label typed skosxl:Label.
func NewLabel(subject rdf.Iri) *Label {
	return &Label{Entity: newTyped(subject, LabelVocabulary, LabelType)}
}

// LabelFromTriples rebuilds a label from its subject group.
func LabelFromTriples(subject rdf.Iri, triples []rdf.Triple) *Label {
	return &Label{Entity: resource.FromTriples(subject, triples, LabelVocabulary)}
}

// UUID returns the openskos:uuid of the label, or "".
func (l *Label) UUID() string { return text(l.Entity, "uuid") }

// LiteralForm returns the lexical form of the label.
func (l *Label) LiteralForm() (rdf.Literal, bool) { return l.Literal("literalForm") }
