package repository

import (
	"context"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Projection maps a predicate IRI to the language its values must carry. An
// empty language accepts every value.
type Projection map[string]string

// Projective is a Repository that can prune fetched triples to a projection
// before rehydration.
type Projective[T resource.Resource] struct {
	*Repository[T]
}

// NewProjective creates a projective repository.
func NewProjective[T resource.Resource](factory Factory[T], client graphstore.Client, opts ...Option) (*Projective[T], error) {
	repo, err := New(factory, client, opts...)
	if err != nil {
		return nil, err
	}
	return &Projective[T]{Repository: repo}, nil
}

// FindManyByIriListWithProjection is FindManyByIriList keeping only triples whose
// predicate is projected and whose language matches the projected one. The
// projection is not modified.
func (p *Projective[T]) FindManyByIriListWithProjection(ctx context.Context, iris []rdf.Iri, projection Projection) (map[string]T, error) {
	triples, err := p.describeMany(ctx, opProjectMany, iris)
	if err != nil {
		return nil, err
	}
	return p.index(opProjectMany, Project(triples, projection)), nil
}

// Project returns the triples matching the projection, in order. Objects that
// are not literals have no language, so a projected language excludes them.
func Project(triples []rdf.Triple, projection Projection) []rdf.Triple {
	out := make([]rdf.Triple, 0, len(triples))
	for _, t := range triples {
		lang, ok := projection[t.Predicate.URI()]
		if !ok {
			continue
		}
		if lang != "" && t.Language() != lang {
			continue
		}
		out = append(out, t)
	}
	return out
}
