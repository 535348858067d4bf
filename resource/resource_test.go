package resource

import (
	"errors"
	"testing"

	"github.com/c360studio/semskos/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	subjectA  = rdf.MustIri("http://example.com/a")
	subjectB  = rdf.MustIri("http://example.com/b")
	predLabel = rdf.MustIri("http://example.com/label")
	predNote  = rdf.MustIri("http://example.com/note")
	predOther = rdf.MustIri("http://example.com/other")
	typeThing = rdf.MustIri("http://example.com/Thing")
)

func testVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := NewVocabulary("thing",
		Field{Name: "type", Predicate: rdf.RDFType},
		Field{Name: "label", Predicate: predLabel},
		Field{Name: "note", Predicate: predNote},
	)
	require.NoError(t, err)
	return v
}

func TestNewVocabulary_Bijection(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"duplicate name", []Field{{"a", predLabel}, {"a", predNote}}},
		{"duplicate predicate", []Field{{"a", predLabel}, {"b", predLabel}}},
		{"empty name", []Field{{"", predLabel}}},
		{"empty predicate", []Field{{"a", rdf.Iri{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVocabulary("bad", tt.fields...)
			assert.ErrorIs(t, err, ErrInvalidVocabulary)
		})
	}

	v := testVocabulary(t)
	p, ok := v.Predicate("label")
	assert.True(t, ok)
	assert.Equal(t, predLabel, p)
	name, ok := v.FieldName(predNote)
	assert.True(t, ok)
	assert.Equal(t, "note", name)
	assert.False(t, v.Has(predOther))
}

func TestFromTriples_RoundTrip(t *testing.T) {
	vocab := testVocabulary(t)
	input := []rdf.Triple{
		rdf.NewTriple(subjectA, rdf.RDFType, typeThing),
		rdf.NewTriple(subjectA, predLabel, rdf.NewLangString("one", "en")),
		rdf.NewTriple(subjectB, predLabel, rdf.NewString("foreign")),
		rdf.NewTriple(subjectA, predOther, rdf.NewString("unmapped")),
		rdf.NewTriple(subjectA, predNote, rdf.NewString("n")),
		rdf.NewTriple(subjectA, predLabel, rdf.NewLangString("two", "nl")),
	}

	e := FromTriples(subjectA, input, vocab)

	want := []rdf.Triple{input[0], input[1], input[4], input[5]}
	assert.Equal(t, want, e.Triples())
	assert.Equal(t, subjectA, e.IRI())

	// last value wins
	label, ok := e.Literal("label")
	require.True(t, ok)
	assert.Equal(t, "two", label.Value())

	_, ok = e.Property(predOther)
	assert.False(t, ok, "unmapped predicate must not get a slot")

	// rebuilding from the output is stable
	again := FromTriples(subjectA, e.Triples(), vocab)
	assert.Equal(t, e.Triples(), again.Triples())
}

func TestCreateEmpty(t *testing.T) {
	e := CreateEmpty(subjectA, testVocabulary(t))
	assert.Empty(t, e.Triples())
	_, ok := e.Field("label")
	assert.False(t, ok)

	require.NoError(t, e.AddField("label", rdf.NewString("x")))
	got, ok := e.Property(predLabel)
	require.True(t, ok)
	assert.Equal(t, "x", got.String())

	// both construction paths key slots by predicate
	rebuilt := FromTriples(subjectA, e.Triples(), e.Vocabulary())
	fromBuilt, _ := rebuilt.Property(predLabel)
	assert.Equal(t, got, fromBuilt)
}

func TestAddProperty_Unknown(t *testing.T) {
	e := CreateEmpty(subjectA, testVocabulary(t))

	err := e.AddProperty(predOther, rdf.NewString("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProperty))
	var upe *UnknownPropertyError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, predOther, upe.Predicate)
	assert.Empty(t, e.Triples())

	assert.ErrorIs(t, e.AddField("missing", rdf.NewString("x")), ErrUnknownProperty)
}

func TestSetProperty(t *testing.T) {
	e := FromTriples(subjectA, []rdf.Triple{
		rdf.NewTriple(subjectA, predLabel, rdf.NewString("a")),
		rdf.NewTriple(subjectA, predNote, rdf.NewString("n")),
		rdf.NewTriple(subjectA, predLabel, rdf.NewString("b")),
	}, testVocabulary(t))

	require.NoError(t, e.SetProperty(predLabel, rdf.NewString("c")))

	triples := e.Triples()
	require.Len(t, triples, 2)
	assert.Equal(t, "c", triples[0].Object.String())
	assert.Equal(t, predNote, triples[1].Predicate)
	lit, _ := e.Literal("label")
	assert.Equal(t, "c", lit.Value())
}

func TestReplaceTriple_RequiresReindex(t *testing.T) {
	e := FromTriples(subjectA, []rdf.Triple{
		rdf.NewTriple(subjectA, predLabel, rdf.NewString("old")),
	}, testVocabulary(t))

	require.NoError(t, e.ReplaceTriple(0, rdf.NewTriple(subjectA, predLabel, rdf.NewString("new"))))
	assert.True(t, e.Stale())

	e.Reindex()
	assert.False(t, e.Stale())
	lit, _ := e.Literal("label")
	assert.Equal(t, "new", lit.Value())

	t.Run("out of range", func(t *testing.T) {
		err := e.ReplaceTriple(3, rdf.NewTriple(subjectA, predLabel, rdf.NewString("x")))
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
	t.Run("foreign subject", func(t *testing.T) {
		err := e.ReplaceTriple(0, rdf.NewTriple(subjectB, predLabel, rdf.NewString("x")))
		assert.ErrorIs(t, err, ErrSubjectMismatch)
	})
	t.Run("unknown predicate", func(t *testing.T) {
		err := e.ReplaceTriple(0, rdf.NewTriple(subjectA, predOther, rdf.NewString("x")))
		assert.ErrorIs(t, err, ErrUnknownProperty)
	})
}

func TestStaleReadReindexes(t *testing.T) {
	e := FromTriples(subjectA, []rdf.Triple{
		rdf.NewTriple(subjectA, predLabel, rdf.NewString("old")),
	}, testVocabulary(t))
	require.NoError(t, e.ReplaceTriple(0, rdf.NewTriple(subjectA, predLabel, rdf.NewString("new"))))

	lit, ok := e.Literal("label")
	require.True(t, ok)
	assert.Equal(t, "new", lit.Value())
	assert.False(t, e.Stale())
}

func TestCloneAndRebase(t *testing.T) {
	orig := FromTriples(subjectB, []rdf.Triple{
		rdf.NewTriple(subjectB, rdf.RDFType, typeThing),
		rdf.NewTriple(subjectB, predLabel, rdf.NewString("b")),
	}, testVocabulary(t))

	c := orig.Clone()
	c.Rebase(subjectA)
	require.NoError(t, c.SetProperty(rdf.RDFType, predNote))

	assert.Equal(t, subjectA, c.IRI())
	assert.Equal(t, subjectB, c.Source())
	ref, ok := rdf.IRIOf(c)
	require.True(t, ok)
	assert.Equal(t, subjectB, ref, "inlined copy still points at the original")
	c.Rebase(subjectB)
	assert.Equal(t, subjectB, c.Clone().Source(), "source survives repeated rebase and clone")
	c.Rebase(subjectA)
	for _, tr := range c.Triples() {
		assert.Equal(t, subjectA, tr.Subject)
	}
	typ, _ := c.Field("type")
	assert.Equal(t, predNote, typ)

	assert.Equal(t, subjectB, orig.IRI(), "original untouched")
	assert.Equal(t, subjectB, orig.Source())
	origType, _ := orig.Field("type")
	assert.Equal(t, typeThing, origType)
	for _, tr := range orig.Triples() {
		assert.Equal(t, subjectB, tr.Subject)
	}
}

func TestRegistry(t *testing.T) {
	vocab := testVocabulary(t)
	reg := NewRegistry(rdf.RDFType)

	assert.ErrorIs(t, reg.Validate(), ErrInvalidVocabulary)

	built := 0
	factory := func(s rdf.Iri, ts []rdf.Triple) Resource {
		built++
		return FromTriples(s, ts, vocab)
	}
	require.NoError(t, reg.Register(typeThing, vocab, factory))
	assert.ErrorIs(t, reg.Register(typeThing, vocab, factory), ErrDuplicateType)
	require.NoError(t, reg.Validate())

	t.Run("dispatch on type", func(t *testing.T) {
		res := reg.Build(subjectA, []rdf.Triple{
			rdf.NewTriple(subjectA, rdf.RDFType, typeThing),
			rdf.NewTriple(subjectA, predLabel, rdf.NewString("x")),
		})
		assert.Equal(t, 1, built)
		assert.Len(t, res.Triples(), 2)
	})

	t.Run("unknown type", func(t *testing.T) {
		res := reg.Build(subjectA, []rdf.Triple{
			rdf.NewTriple(subjectA, rdf.RDFType, predOther),
			rdf.NewTriple(subjectA, predLabel, rdf.NewString("x")),
		})
		assert.Equal(t, 1, built)
		require.Len(t, res.Triples(), 1)
		assert.Equal(t, rdf.RDFType, res.Triples()[0].Predicate)
	})

	t.Run("vocabulary without type predicate", func(t *testing.T) {
		r := NewRegistry(rdf.RDFType)
		noType := MustVocabulary("notype", Field{Name: "label", Predicate: predLabel})
		require.NoError(t, r.Register(typeThing, noType, factory))
		assert.ErrorIs(t, r.Validate(), ErrInvalidVocabulary)
	})
}
