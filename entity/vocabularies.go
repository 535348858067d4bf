package entity

import (
	"time"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

// Vocabularies built from the openskos field tables. They are immutable after
// package initialization.
var (
	ConceptVocabulary       = vocabularyFor(openskos.EntityTypeConcept)
	ConceptSchemeVocabulary = vocabularyFor(openskos.EntityTypeConceptScheme)
	InstitutionVocabulary   = vocabularyFor(openskos.EntityTypeInstitution)
	LabelVocabulary         = vocabularyFor(openskos.EntityTypeLabel)
	SetVocabulary           = vocabularyFor(openskos.EntityTypeSet)
	UserVocabulary          = vocabularyFor(openskos.EntityTypeUser)
)

// Class IRIs as identifiers.
var (
	ConceptType       = rdf.MustIri(openskos.ClassConcept)
	ConceptSchemeType = rdf.MustIri(openskos.ClassConceptScheme)
	InstitutionType   = rdf.MustIri(openskos.ClassInstitution)
	LabelType         = rdf.MustIri(openskos.ClassLabel)
	SetType           = rdf.MustIri(openskos.ClassSet)
	UserType          = rdf.MustIri(openskos.ClassUser)
)

func vocabularyFor(t openskos.EntityType) *resource.Vocabulary {
	bindings := openskos.Fields(t)
	fields := make([]resource.Field, len(bindings))
	for i, b := range bindings {
		fields[i] = resource.Field{Name: b.Field, Predicate: rdf.MustIri(b.IRI)}
	}
	return resource.MustVocabulary(string(t), fields...)
}

// newTyped creates an empty entity that already carries its type triple.
func newTyped(subject rdf.Iri, vocab *resource.Vocabulary, class rdf.Iri) *resource.Entity {
	e := resource.CreateEmpty(subject, vocab)
	// The type field is in every table, so this cannot fail.
	_ = e.SetField("type", class)
	return e
}

// text returns the lexical value of a literal field, or "".
func text(e *resource.Entity, field string) string {
	lit, ok := e.Literal(field)
	if !ok {
		return ""
	}
	return lit.Value()
}

// flag returns a boolean field; absent means false.
func flag(e *resource.Entity, field string) bool {
	lit, ok := e.Literal(field)
	return ok && lit.Bool()
}

// timestamp returns a datetime field; absent or malformed means the zero time.
func timestamp(e *resource.Entity, field string) time.Time {
	lit, ok := e.Literal(field)
	if !ok {
		return time.Time{}
	}
	t, err := lit.Time()
	if err != nil {
		return time.Time{}
	}
	return t
}

// inLanguage returns the literal values of a field tagged with lang. An empty
// lang returns every value.
func inLanguage(e *resource.Entity, field, lang string) []string {
	var out []string
	for _, term := range e.Values(field) {
		lit, ok := term.(rdf.Literal)
		if !ok {
			continue
		}
		if lang == "" || lit.Lang() == lang {
			out = append(out, lit.Value())
		}
	}
	return out
}

// references returns the identifiers held by a multi-valued field.
func references(e *resource.Entity, field string) []rdf.Iri {
	var out []rdf.Iri
	for _, term := range e.Values(field) {
		if iri, ok := rdf.IRIOf(term); ok {
			out = append(out, iri)
		}
	}
	return out
}
