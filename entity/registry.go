package entity

import (
	"fmt"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// NewRegistry returns a validated registry of all entity types, dispatching on
// rdf:type.
func NewRegistry() (*resource.Registry, error) {
	r := resource.NewRegistry(rdf.RDFType)
	entries := []struct {
		class   rdf.Iri
		vocab   *resource.Vocabulary
		factory resource.Factory
	}{
		{ConceptType, ConceptVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return ConceptFromTriples(s, t) }},
		{ConceptSchemeType, ConceptSchemeVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return ConceptSchemeFromTriples(s, t) }},
		{InstitutionType, InstitutionVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return InstitutionFromTriples(s, t) }},
		{LabelType, LabelVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return LabelFromTriples(s, t) }},
		{SetType, SetVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return SetFromTriples(s, t) }},
		{UserType, UserVocabulary, func(s rdf.Iri, t []rdf.Triple) resource.Resource { return UserFromTriples(s, t) }},
	}
	for _, e := range entries {
		if err := r.Register(e.class, e.vocab, e.factory); err != nil {
			return nil, fmt.Errorf("register %s: %w", e.vocab.Name(), err)
		}
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}
	return r, nil
}
