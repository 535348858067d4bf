package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semskos/rdf"
)

const rdfType = "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>"

func iri(s string) rdf.Iri { return rdf.MustIri(s) }

func TestDescribeAllOfType(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	concept := iri("http://www.w3.org/2004/02/skos/core#Concept")
	status := iri("http://openskos.org/xmlns#status")
	scheme := iri("http://www.w3.org/2004/02/skos/core#inScheme")

	tests := []struct {
		name    string
		offset  int
		limit   int
		filters []Filter
		want    string
	}{
		{
			name:   "no filters",
			offset: 5,
			limit:  10,
			want:   "DESCRIBE ?subject WHERE { ?subject " + rdfType + " <http://www.w3.org/2004/02/skos/core#Concept> } LIMIT 10 OFFSET 5",
		},
		{
			name:   "single string filter",
			offset: 0,
			limit:  20,
			filters: []Filter{
				{Predicate: status, Value: "approved"},
			},
			want: "DESCRIBE ?subject WHERE{ SELECT ?subject WHERE { ?subject " + rdfType +
				" <http://www.w3.org/2004/02/skos/core#Concept>; <http://openskos.org/xmlns#status> $f1 . " +
				"FILTER ( $f1 = \"approved\" ) }} LIMIT 20 OFFSET 0",
		},
		{
			name:   "grouped by predicate in order of first appearance",
			offset: 40,
			limit:  20,
			filters: []Filter{
				{Predicate: scheme, Value: "http://example.com/s/1", IsURI: true},
				{Predicate: status, Value: "approved"},
				{Predicate: scheme, Value: "http://example.com/s/2", IsURI: true},
			},
			want: "DESCRIBE ?subject WHERE{ SELECT ?subject WHERE { ?subject " + rdfType +
				" <http://www.w3.org/2004/02/skos/core#Concept>; <http://www.w3.org/2004/02/skos/core#inScheme> $f1;" +
				" <http://openskos.org/xmlns#status> $f2 . " +
				"FILTER ( $f1 = <http://example.com/s/1> || $f1 = <http://example.com/s/2> || $f2 = \"approved\" ) }}" +
				" LIMIT 20 OFFSET 40",
		},
		{
			name:   "string values are escaped",
			limit:  1,
			offset: 0,
			filters: []Filter{
				{Predicate: status, Value: `say "hi"`},
			},
			want: "DESCRIBE ?subject WHERE{ SELECT ?subject WHERE { ?subject " + rdfType +
				" <http://www.w3.org/2004/02/skos/core#Concept>; <http://openskos.org/xmlns#status> $f1 . " +
				`FILTER ( $f1 = "say \"hi\"" ) }} LIMIT 1 OFFSET 0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.DescribeAllOfType(concept, tt.offset, tt.limit, tt.filters)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeAllOfTypeIsPure(t *testing.T) {
	b := NewBuilder(Config{})
	filters := []Filter{{Predicate: iri("http://example.com/p"), Value: "v"}}
	first := b.DescribeAllOfType(iri("http://example.com/T"), 0, 10, filters)
	second := b.DescribeAllOfType(iri("http://example.com/T"), 0, 10, filters)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "$f1")
	assert.NotContains(t, first, "$f2")
}

func TestCustomTypePredicate(t *testing.T) {
	b := NewBuilder(Config{TypePredicate: iri("http://example.com/kind")})
	got := b.DescribeAllOfType(iri("http://example.com/T"), 0, 1, nil)
	assert.Equal(t, "DESCRIBE ?subject WHERE { ?subject <http://example.com/kind> <http://example.com/T> } LIMIT 1 OFFSET 0", got)
}

func TestDescribeResource(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	assert.Equal(t, "DESCRIBE <http://example.com/a>", b.DescribeResource(iri("http://example.com/a")))
	assert.Equal(t, "DESCRIBE <http://example.com/a%20b>", b.DescribeResource(iri("http://example.com/a b")))
}

func TestDescribeResources(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	got, err := b.DescribeResources([]rdf.Iri{iri("http://example.com/a"), iri("http://example.com/b")})
	require.NoError(t, err)
	assert.Equal(t, "DESCRIBE <http://example.com/a> <http://example.com/b>", got)

	_, err = b.DescribeResources(nil)
	assert.True(t, errors.Is(err, ErrNoSubjects))
}

func TestDescribeByTypeAndPredicate(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	got := b.DescribeByTypeAndPredicate(
		iri("http://www.w3.org/2004/02/skos/core#Concept"),
		iri("http://openskos.org/xmlns#uuid"),
		rdf.NewString("0b1c9a5e-0000-4000-8000-000000000001"),
	)
	assert.Equal(t, "DESCRIBE ?subject WHERE { ?subject "+rdfType+
		" <http://www.w3.org/2004/02/skos/core#Concept>; <http://openskos.org/xmlns#uuid> "+
		`"0b1c9a5e-0000-4000-8000-000000000001" . }`, got)
}

func TestUpdates(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	s := iri("http://example.com/a")

	insert := b.InsertData([]rdf.Triple{
		rdf.NewTriple(s, iri("http://example.com/p"), rdf.NewLangString("x", "en")),
		rdf.NewTriple(s, iri("http://example.com/q"), iri("http://example.com/b")),
	})
	assert.Equal(t, "INSERT DATA {\n"+
		"<http://example.com/a> <http://example.com/p> \"x\"@en .\n"+
		"<http://example.com/a> <http://example.com/q> <http://example.com/b> .\n"+
		"}", insert)

	assert.Equal(t, "DELETE WHERE { <http://example.com/a> ?p ?o }", b.DeleteSubject(s))
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		isURI   bool
		want    Filter
		wantErr bool
	}{
		{
			name: "string value",
			raw:  "http://openskos.org/xmlns#status=approved",
			want: Filter{Predicate: iri("http://openskos.org/xmlns#status"), Value: "approved"},
		},
		{
			name:  "uri value keeps later equals signs",
			raw:   "http://example.com/p=http://example.com/x?a=b",
			isURI: true,
			want:  Filter{Predicate: iri("http://example.com/p"), Value: "http://example.com/x?a=b", IsURI: true},
		},
		{name: "missing separator", raw: "http://example.com/p", wantErr: true},
		{name: "empty predicate", raw: "=x", wantErr: true},
		{name: "relative predicate", raw: "status=x", wantErr: true},
		{name: "empty uri", raw: "http://example.com/p=", isURI: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.raw, tt.isURI)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
