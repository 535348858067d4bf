// Package graphstore defines the graph-store client the repositories run
// queries through, and the N-Triples codec shared by its implementations.
//
// Two implementations live in subpackages: sparql speaks the SPARQL 1.1 protocol
// over HTTP, natsgraph speaks request/reply over NATS. graphstoretest provides a
// recording in-memory fake.
package graphstore

import (
	"context"

	"github.com/c360studio/semskos/rdf"
)

// Client executes queries and updates against a remote graph store.
//
// Describe returns the flat, possibly multi-subject triple stream for a DESCRIBE
// query. An empty result means no match and is not an error. Timeouts and
// cancellation come from ctx; the client does not retry.
type Client interface {
	Describe(ctx context.Context, query string) ([]rdf.Triple, error)
	Insert(ctx context.Context, triples []rdf.Triple) error
	DeleteSubject(ctx context.Context, iri rdf.Iri) error
}
