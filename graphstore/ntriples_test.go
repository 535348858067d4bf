package graphstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semskos/rdf"
)

func TestDecodeNTriples(t *testing.T) {
	doc := `<http://example.com/a> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#Concept> .
<http://example.com/a> <http://www.w3.org/2004/02/skos/core#prefLabel> "tree"@en .
<http://example.com/a> <http://openskos.org/xmlns#uuid> "abc" .
<http://example.com/a> <http://purl.org/dc/terms/modified> "2024-01-02T03:04:05Z"^^<http://www.w3.org/2001/XMLSchema#dateTime> .
_:b0 <http://example.com/p> <http://example.com/a> .
`
	triples, err := DecodeNTriples(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, triples, 5)

	a := rdf.MustIri("http://example.com/a")
	assert.Equal(t, a, triples[0].Subject)
	assert.Equal(t, rdf.RDFType, triples[0].Predicate)
	assert.Equal(t, rdf.MustIri("http://www.w3.org/2004/02/skos/core#Concept"), triples[0].Object)

	assert.Equal(t, rdf.NewLangString("tree", "en"), triples[1].Object)
	assert.Equal(t, rdf.NewString("abc"), triples[2].Object)

	lit, ok := triples[3].Object.(rdf.Literal)
	require.True(t, ok)
	assert.Equal(t, rdf.XSDDateTime, lit.Datatype())
	assert.Equal(t, "2024-01-02T03:04:05Z", lit.Value())

	assert.True(t, triples[4].Subject.IsBlank())
}

func TestDecodeNTriplesEmpty(t *testing.T) {
	triples, err := DecodeNTriples(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, triples)
}

func TestDecodeNTriplesMalformed(t *testing.T) {
	_, err := DecodeNTriples(strings.NewReader("<http://example.com/a> <http://example.com/p> .\n"))
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	a := rdf.MustIri("http://example.com/a")
	in := []rdf.Triple{
		rdf.NewTriple(a, rdf.RDFType, rdf.MustIri("http://example.com/T")),
		rdf.NewTriple(a, rdf.MustIri("http://example.com/label"), rdf.NewLangString(`say "hi"`, "en")),
		rdf.NewTriple(a, rdf.MustIri("http://example.com/flag"), rdf.NewBoolean(true)),
	}

	doc, err := FormatNTriples(in)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(doc, " .\n"))

	out, err := DecodeNTriples(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
