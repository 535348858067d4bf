// Package openskos defines the vocabulary of the SKOS vocabulary service: namespaces,
// class IRIs, and the field table of every entity type.
//
// # Field tables
//
// Each entity type has an ordered table of bindings. A binding ties a local field
// name (prefLabel, inScheme, ...) to the predicate IRI stored in the graph, and to a
// dotted predicate name in the semstreams style (openskos.concept.pref_label).
// The entity package builds its mapping vocabularies from these tables, so the
// tables are the single source of truth for field ↔ predicate translation.
//
// # Semstreams Integration
//
// Importing the package registers every binding with the semstreams predicate
// registry, with the graph IRI as the standard IRI:
//
//	meta := vocabulary.GetPredicateMetadata("openskos.concept.pref_label")
//	meta.StandardIRI // http://www.w3.org/2004/02/skos/core#prefLabel
//
// The registry is discovery metadata only. Mapping never consults it.
package openskos
