package openskos

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicateName(t *testing.T) {
	tests := []struct {
		entityType EntityType
		field      string
		want       string
	}{
		{EntityTypeConcept, "prefLabel", "openskos.concept.pref_label"},
		{EntityTypeConcept, "xlPrefLabel", "openskos.concept.xl_pref_label"},
		{EntityTypeConceptScheme, "title", "openskos.concept_scheme.title"},
		{EntityTypeInstitution, "enableSkosXl", "openskos.institution.enable_skos_xl"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := PredicateName(tt.entityType, tt.field); got != tt.want {
				t.Errorf("PredicateName(%q, %q) = %q, want %q", tt.entityType, tt.field, got, tt.want)
			}
		})
	}
}

func TestPredicatesRegistered(t *testing.T) {
	for _, et := range EntityTypes {
		for _, b := range Fields(et) {
			name := PredicateName(et, b.Field)
			t.Run(name, func(t *testing.T) {
				meta := vocabulary.GetPredicateMetadata(name)
				if meta == nil {
					t.Fatalf("predicate %s not registered", name)
				}
				if meta.Description == "" {
					t.Errorf("predicate %s missing description", name)
				}
				if meta.StandardIRI != b.IRI {
					t.Errorf("predicate %s: expected IRI %s, got %s", name, b.IRI, meta.StandardIRI)
				}
			})
		}
	}
}

func TestFieldTables(t *testing.T) {
	for _, et := range EntityTypes {
		t.Run(string(et), func(t *testing.T) {
			fields := Fields(et)
			if len(fields) == 0 {
				t.Fatal("no field table")
			}
			if fields[0].IRI != RDFType {
				t.Errorf("first field should be rdf:type, got %s", fields[0].IRI)
			}
			if _, ok := ClassIRIs[et]; !ok {
				t.Errorf("no class IRI for %s", et)
			}

			names := make(map[string]bool)
			iris := make(map[string]bool)
			for _, b := range fields {
				if names[b.Field] {
					t.Errorf("duplicate field %s", b.Field)
				}
				if iris[b.IRI] {
					t.Errorf("duplicate predicate %s", b.IRI)
				}
				names[b.Field] = true
				iris[b.IRI] = true
			}
		})
	}

	if Fields("unknown") != nil {
		t.Error("unknown entity type should have no field table")
	}
}

func TestFieldIRI(t *testing.T) {
	tests := []struct {
		entityType EntityType
		field      string
		want       string
		ok         bool
	}{
		{EntityTypeConcept, "prefLabel", SkosPrefLabel, true},
		{EntityTypeConcept, "xlPrefLabel", SkosXLPrefLabel, true},
		{EntityTypeUser, "role", OpenSkosRole, true},
		{EntityTypeConcept, "colour", "", false},
		{EntityTypeUser, "prefLabel", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.entityType)+"/"+tt.field, func(t *testing.T) {
			got, ok := FieldIRI(tt.entityType, tt.field)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FieldIRI(%q, %q) = %q, %v; want %q, %v", tt.entityType, tt.field, got, ok, tt.want, tt.ok)
			}
		})
	}
}
