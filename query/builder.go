package query

import (
	"strconv"
	"strings"

	"github.com/c360studio/semskos/rdf"
)

// Config holds the settings a Builder is constructed with.
type Config struct {
	// TypePredicate links a subject to its class. Defaults to rdf:type.
	TypePredicate rdf.Iri
}

// DefaultConfig returns a configuration using rdf:type.
func DefaultConfig() Config {
	return Config{TypePredicate: rdf.RDFType}
}

// Builder constructs DESCRIBE queries and SPARQL updates. Every method is a pure
// function of its arguments and the configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder. A zero type predicate falls back to rdf:type.
func NewBuilder(cfg Config) *Builder {
	if cfg.TypePredicate.IsZero() {
		cfg.TypePredicate = rdf.RDFType
	}
	return &Builder{cfg: cfg}
}

// TypePredicate returns the configured type predicate.
func (b *Builder) TypePredicate() rdf.Iri { return b.cfg.TypePredicate }

// DescribeAllOfType lists subjects of a type, paginated.
//
// Without filters:
//
//	DESCRIBE ?subject WHERE { ?subject <type-pred> <T> } LIMIT l OFFSET o
//
// With filters, each distinct predicate gets a variable that must be bound, and
// one FILTER accepts a subject if any variable equals any of its values:
//
//	DESCRIBE ?subject WHERE{ SELECT ?subject WHERE { ?subject <type-pred> <T>; <P1> $f1 . FILTER ( $f1 = V1 || $f1 = V2 ) }} LIMIT l OFFSET o
func (b *Builder) DescribeAllOfType(typ rdf.Iri, offset, limit int, filters []Filter) string {
	var sb strings.Builder
	if len(filters) == 0 {
		sb.WriteString("DESCRIBE ?subject WHERE { ?subject ")
		sb.WriteString(iriRef(b.cfg.TypePredicate))
		sb.WriteByte(' ')
		sb.WriteString(iriRef(typ))
		sb.WriteString(" }")
		writePage(&sb, offset, limit)
		return sb.String()
	}

	groups := groupFilters(filters)
	sb.WriteString("DESCRIBE ?subject WHERE{ SELECT ?subject WHERE { ?subject ")
	sb.WriteString(iriRef(b.cfg.TypePredicate))
	sb.WriteByte(' ')
	sb.WriteString(iriRef(typ))
	for _, g := range groups {
		sb.WriteString("; ")
		sb.WriteString(iriRef(g.predicate))
		sb.WriteByte(' ')
		sb.WriteString(g.variable)
	}
	sb.WriteString(" . FILTER ( ")
	first := true
	for _, g := range groups {
		for _, v := range g.values {
			if !first {
				sb.WriteString(" || ")
			}
			first = false
			sb.WriteString(g.variable)
			sb.WriteString(" = ")
			sb.WriteString(v)
		}
	}
	sb.WriteString(" ) }}")
	writePage(&sb, offset, limit)
	return sb.String()
}

// DescribeResource describes a single subject.
func (b *Builder) DescribeResource(iri rdf.Iri) string {
	return "DESCRIBE " + iriRef(iri)
}

// DescribeResources describes an explicit subject list in one query.
func (b *Builder) DescribeResources(iris []rdf.Iri) (string, error) {
	if len(iris) == 0 {
		return "", ErrNoSubjects
	}
	var sb strings.Builder
	sb.WriteString("DESCRIBE")
	for _, iri := range iris {
		sb.WriteByte(' ')
		sb.WriteString(iriRef(iri))
	}
	return sb.String(), nil
}

// DescribeByTypeAndPredicate describes subjects of a type holding value for predicate:
//
//	DESCRIBE ?subject WHERE { ?subject <type-pred> <T>; <P> V . }
func (b *Builder) DescribeByTypeAndPredicate(typ, predicate rdf.Iri, value rdf.Term) string {
	var sb strings.Builder
	sb.WriteString("DESCRIBE ?subject WHERE { ?subject ")
	sb.WriteString(iriRef(b.cfg.TypePredicate))
	sb.WriteByte(' ')
	sb.WriteString(iriRef(typ))
	sb.WriteString("; ")
	sb.WriteString(iriRef(predicate))
	sb.WriteByte(' ')
	sb.WriteString(rdf.FormatTerm(value))
	sb.WriteString(" . }")
	return sb.String()
}

// InsertData builds an INSERT DATA update. Inlined resources are written as
// references to the subject they were fetched under.
func (b *Builder) InsertData(triples []rdf.Triple) string {
	var sb strings.Builder
	sb.WriteString("INSERT DATA {\n")
	for _, t := range triples {
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}

// DeleteSubject builds an update removing every triple about a subject.
func (b *Builder) DeleteSubject(iri rdf.Iri) string {
	return "DELETE WHERE { " + iriRef(iri) + " ?p ?o }"
}

func iriRef(iri rdf.Iri) string {
	return "<" + rdf.EscapeIRI(iri.URI()) + ">"
}

func writePage(sb *strings.Builder, offset, limit int) {
	sb.WriteString(" LIMIT ")
	sb.WriteString(strconv.Itoa(limit))
	sb.WriteString(" OFFSET ")
	sb.WriteString(strconv.Itoa(offset))
}
