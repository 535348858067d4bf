// Package graphstoretest provides an in-memory graph store for tests.
package graphstoretest

import (
	"context"
	"strings"
	"sync"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/rdf"
)

// Store is a recording fake. Describe answers from queued responses matched on a
// query substring, falling back to Default.
type Store struct {
	mu        sync.Mutex
	responses []response
	// Default is returned by Describe when no queued response matches.
	Default []rdf.Triple
	// Err, when set, fails every call.
	Err error

	Queries  []string
	Inserted [][]rdf.Triple
	Deleted  []rdf.Iri
}

type response struct {
	contains string
	triples  []rdf.Triple
}

var _ graphstore.Client = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// On answers queries containing substr with triples. Responses are checked in
// the order they were added.
func (s *Store) On(substr string, triples ...rdf.Triple) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, response{contains: substr, triples: triples})
	return s
}

// Describe records the query and returns the first matching response.
func (s *Store) Describe(ctx context.Context, query string) ([]rdf.Triple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queries = append(s.Queries, query)
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, r := range s.responses {
		if strings.Contains(query, r.contains) {
			return clone(r.triples), nil
		}
	}
	return clone(s.Default), nil
}

// Insert records the triples.
func (s *Store) Insert(_ context.Context, triples []rdf.Triple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Inserted = append(s.Inserted, clone(triples))
	return nil
}

// DeleteSubject records the subject.
func (s *Store) DeleteSubject(_ context.Context, iri rdf.Iri) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, iri)
	return nil
}

// InsertedBatches returns a copy of the recorded inserts.
func (s *Store) InsertedBatches() [][]rdf.Triple {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]rdf.Triple, len(s.Inserted))
	copy(out, s.Inserted)
	return out
}

// DeletedSubjects returns a copy of the recorded deletes.
func (s *Store) DeletedSubjects() []rdf.Iri {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rdf.Iri, len(s.Deleted))
	copy(out, s.Deleted)
	return out
}

// RecordedQueries returns a copy of the Describe queries received.
func (s *Store) RecordedQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Queries))
	copy(out, s.Queries)
	return out
}

// QueryCount returns the number of Describe calls.
func (s *Store) QueryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Queries)
}

func clone(triples []rdf.Triple) []rdf.Triple {
	if triples == nil {
		return nil
	}
	out := make([]rdf.Triple, len(triples))
	copy(out, triples)
	return out
}
