package query

import (
	"fmt"
	"strings"

	"github.com/c360studio/semskos/rdf"
)

// Filter restricts a type listing to subjects with a predicate value.
type Filter struct {
	Predicate rdf.Iri
	Value     string
	// IsURI renders Value as <uri> instead of a quoted string.
	IsURI bool
}

// ParseFilter parses "predicate=value". The predicate must be an absolute IRI;
// the value is everything after the first '='.
func ParseFilter(raw string, isURI bool) (Filter, error) {
	pred, value, ok := strings.Cut(raw, "=")
	pred = strings.TrimSpace(pred)
	if !ok || pred == "" {
		return Filter{}, fmt.Errorf("%w: %q: want predicate=value", ErrInvalidFilter, raw)
	}
	if !strings.Contains(pred, ":") {
		return Filter{}, fmt.Errorf("%w: %q: predicate must be an absolute IRI", ErrInvalidFilter, raw)
	}
	if isURI && value == "" {
		return Filter{}, fmt.Errorf("%w: %q: empty URI value", ErrInvalidFilter, raw)
	}
	p, err := rdf.NewIri(pred)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return Filter{Predicate: p, Value: value, IsURI: isURI}, nil
}

// term renders the filter value in query syntax.
func (f Filter) term() string {
	if f.IsURI {
		return "<" + rdf.EscapeIRI(f.Value) + ">"
	}
	return rdf.FormatTerm(rdf.NewString(f.Value))
}

// filterGroup holds the values of one predicate and the variable bound to it.
type filterGroup struct {
	predicate rdf.Iri
	variable  string
	values    []string
}

// groupFilters groups filters by predicate in order of first appearance and
// assigns $f1..$fN.
func groupFilters(filters []Filter) []*filterGroup {
	var groups []*filterGroup
	byPredicate := make(map[string]*filterGroup)
	for _, f := range filters {
		g, ok := byPredicate[f.Predicate.URI()]
		if !ok {
			g = &filterGroup{
				predicate: f.Predicate,
				variable:  fmt.Sprintf("$f%d", len(groups)+1),
			}
			byPredicate[f.Predicate.URI()] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, f.term())
	}
	return groups
}
