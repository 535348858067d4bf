// Package entity provides the typed entities of the vocabulary service: Concept,
// ConceptScheme, Institution, Label, Set and User.
//
// Every type wraps a generic resource.Entity mapped with the vocabulary built from
// its openskos field table, so all types share one mapping implementation. Each
// type has two constructors, NewX for a new subject and XFromTriples for a subject
// group returned by a query; the latter has the resource.Factory shape once bound
// through a closure and is what repositories are built with.
//
// NewRegistry returns a validated type→factory registry covering all six types,
// for callers that rebuild mixed-type DESCRIBE results.
package entity
