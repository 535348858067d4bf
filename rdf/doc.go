// Package rdf provides the value types exchanged with the graph store: identifiers,
// literals, the Term union and triples.
//
// All types are immutable in practice. The only sanctioned mutation is Iri.SetURI,
// which exists for the cross-link enrichment substitution path.
//
// Terms render to N-Triples through FormatTerm, which delegates escaping to
// github.com/cayleygraph/quad so query strings and decoded responses agree on syntax.
package rdf
