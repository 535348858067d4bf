package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semskos/entity"
	"github.com/c360studio/semskos/graphstore/graphstoretest"
	"github.com/c360studio/semskos/query"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/repository"
	"github.com/c360studio/semskos/resource"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

var (
	xlPrefLabel = rdf.MustIri(openskos.SkosXLPrefLabel)
	xlAltLabel  = rdf.MustIri(openskos.SkosXLAltLabel)
	literalForm = rdf.MustIri(openskos.SkosXLLiteralForm)
	prefLabel   = rdf.MustIri(openskos.SkosPrefLabel)

	e1 = rdf.MustIri("http://example.com/concept/1")
	e2 = rdf.MustIri("http://example.com/concept/2")
	l1 = rdf.MustIri("http://example.com/label/1")
	l2 = rdf.MustIri("http://example.com/label/2")
)

// fakeFetcher serves labels from memory and counts calls.
type fakeFetcher struct {
	labels    map[string]*entity.Label
	calls     int
	requested [][]rdf.Iri
	err       error
}

func (f *fakeFetcher) FindManyByIriList(_ context.Context, iris []rdf.Iri) (map[string]*entity.Label, error) {
	f.calls++
	f.requested = append(f.requested, iris)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*entity.Label)
	for _, iri := range iris {
		if l, ok := f.labels[iri.URI()]; ok {
			out[iri.URI()] = l
		}
	}
	return out, nil
}

func label(subject rdf.Iri, form string) *entity.Label {
	return entity.LabelFromTriples(subject, []rdf.Triple{
		rdf.NewTriple(subject, rdf.RDFType, entity.LabelType),
		rdf.NewTriple(subject, literalForm, rdf.NewLangString(form, "en")),
	})
}

func concept(subject rdf.Iri, triples ...rdf.Triple) *entity.Concept {
	base := []rdf.Triple{rdf.NewTriple(subject, rdf.RDFType, entity.ConceptType)}
	return entity.ConceptFromTriples(subject, append(base, triples...))
}

func newEnricher(t *testing.T, f Fetcher[*entity.Label]) *Enricher[*entity.Label] {
	t.Helper()
	e, err := New(f)
	require.NoError(t, err)
	return e
}

func TestSharedTargetScenario(t *testing.T) {
	fetcher := &fakeFetcher{labels: map[string]*entity.Label{l1.URI(): label(l1, "tree")}}
	concepts := []*entity.Concept{
		concept(e1, rdf.NewTriple(e1, xlPrefLabel, l1)),
		concept(e2, rdf.NewTriple(e2, xlPrefLabel, l1)),
	}

	err := newEnricher(t, fetcher).Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, Targets(concepts))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, [][]rdf.Iri{{l1}}, fetcher.requested)

	var inlined []*resource.Entity
	for i, c := range concepts {
		subject := []rdf.Iri{e1, e2}[i]
		triples := c.Triples()
		require.Len(t, triples, 2)

		inline, ok := triples[1].Object.(*resource.Entity)
		require.True(t, ok, "triple of %s not inlined", subject)
		assert.Equal(t, subject, triples[1].Subject)
		assert.Equal(t, xlPrefLabel, triples[1].Predicate)

		// The copy reads as if it were inline in the originating triple.
		assert.Equal(t, subject, inline.IRI())
		typ, ok := inline.Reference("type")
		require.True(t, ok)
		assert.Equal(t, xlPrefLabel, typ)
		for _, it := range inline.Triples() {
			assert.Equal(t, subject, it.Subject)
		}
		form, ok := inline.Literal("literalForm")
		require.True(t, ok)
		assert.Equal(t, "tree", form.Value())

		assert.False(t, c.Stale())
		xl := c.XLPrefLabels()
		require.Len(t, xl, 1)

		inlined = append(inlined, inline)
	}

	// The copies are independent of each other and of the fetched label.
	assert.NotSame(t, inlined[0], inlined[1])
	require.NoError(t, inlined[0].SetField("literalForm", rdf.NewString("changed")))
	form, _ := inlined[1].Literal("literalForm")
	assert.Equal(t, "tree", form.Value())
	assert.Equal(t, l1, fetcher.labels[l1.URI()].IRI())
	typ, _ := fetcher.labels[l1.URI()].Reference("type")
	assert.Equal(t, entity.LabelType, typ)
}

func TestEnrichedConceptWritesBackLinks(t *testing.T) {
	fetcher := &fakeFetcher{labels: map[string]*entity.Label{l1.URI(): label(l1, "tree")}}
	c := concept(e1, rdf.NewTriple(e1, xlPrefLabel, l1))

	err := newEnricher(t, fetcher).Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, Targets([]*entity.Concept{c}))
	require.NoError(t, err)
	require.Len(t, c.XLPrefLabels(), 1)

	ref, ok := c.Reference("xlPrefLabel")
	require.True(t, ok)
	assert.Equal(t, l1, ref)

	insert := query.NewBuilder(query.DefaultConfig()).InsertData(c.Triples())
	assert.Contains(t, insert, "<"+e1.URI()+"> <"+xlPrefLabel.URI()+"> <"+l1.URI()+"> .")
	assert.NotContains(t, insert, "<"+e1.URI()+"> <"+xlPrefLabel.URI()+"> <"+e1.URI()+"> .")
}

func TestManyReferencesOneFetch(t *testing.T) {
	fetcher := &fakeFetcher{labels: map[string]*entity.Label{
		l1.URI(): label(l1, "tree"),
		l2.URI(): label(l2, "shrub"),
	}}

	var concepts []*entity.Concept
	for i := range 10 {
		s := rdf.MustIri("http://example.com/concept/n" + string(rune('a'+i)))
		concepts = append(concepts, concept(s,
			rdf.NewTriple(s, xlPrefLabel, l1),
			rdf.NewTriple(s, xlAltLabel, l2),
		))
	}

	err := newEnricher(t, fetcher).Enrich(context.Background(),
		[]rdf.Iri{xlPrefLabel, xlAltLabel}, Targets(concepts))
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, [][]rdf.Iri{{l1, l2}}, fetcher.requested)
	for _, c := range concepts {
		for _, tr := range c.Triples()[1:] {
			assert.Equal(t, rdf.KindResource, tr.Object.Kind())
		}
	}
}

func TestMissIsNonFatal(t *testing.T) {
	fetcher := &fakeFetcher{labels: map[string]*entity.Label{l1.URI(): label(l1, "tree")}}
	c := concept(e1,
		rdf.NewTriple(e1, xlPrefLabel, l1),
		rdf.NewTriple(e1, xlAltLabel, l2),
	)

	err := newEnricher(t, fetcher).Enrich(context.Background(),
		[]rdf.Iri{xlPrefLabel, xlAltLabel}, Targets([]*entity.Concept{c}))
	require.NoError(t, err)

	triples := c.Triples()
	assert.Equal(t, rdf.KindResource, triples[1].Object.Kind())
	assert.Equal(t, rdf.NewTriple(e1, xlAltLabel, l2), triples[2])
}

func TestNothingToEnrich(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := concept(e1,
		rdf.NewTriple(e1, prefLabel, rdf.NewLangString("tree", "en")),
		rdf.NewTriple(e1, xlPrefLabel, l1),
	)
	before := c.Triples()

	// Only literal objects under the requested predicate.
	err := newEnricher(t, fetcher).Enrich(context.Background(), []rdf.Iri{prefLabel}, Targets([]*entity.Concept{c}))
	require.NoError(t, err)

	err = newEnricher(t, fetcher).Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, nil)
	require.NoError(t, err)

	assert.Zero(t, fetcher.calls)
	assert.Equal(t, before, c.Triples())
}

func TestAlreadyInlinedIsSkipped(t *testing.T) {
	fetcher := &fakeFetcher{labels: map[string]*entity.Label{l1.URI(): label(l1, "tree")}}
	c := concept(e1, rdf.NewTriple(e1, xlPrefLabel, l1))
	targets := Targets([]*entity.Concept{c})
	enricher := newEnricher(t, fetcher)

	require.NoError(t, enricher.Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, targets))
	require.NoError(t, enricher.Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, targets))

	assert.Equal(t, 1, fetcher.calls)
}

func TestFetchErrorPropagates(t *testing.T) {
	upstream := errors.New("store unavailable")
	fetcher := &fakeFetcher{err: upstream}
	c := concept(e1, rdf.NewTriple(e1, xlPrefLabel, l1))
	before := c.Triples()

	err := newEnricher(t, fetcher).Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, Targets([]*entity.Concept{c}))
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, before, c.Triples())
}

func TestWithRepositoryFetcher(t *testing.T) {
	store := graphstoretest.New()
	store.Default = label(l1, "tree").Triples()
	labels, err := repository.New(entity.LabelFromTriples, store)
	require.NoError(t, err)

	c := concept(e1, rdf.NewTriple(e1, xlPrefLabel, l1))
	enricher, err := New[*entity.Label](labels)
	require.NoError(t, err)

	require.NoError(t, enricher.Enrich(context.Background(), []rdf.Iri{xlPrefLabel}, Targets([]*entity.Concept{c})))

	assert.Equal(t, []string{"DESCRIBE <http://example.com/label/1>"}, store.Queries)
	xl := c.XLPrefLabels()
	require.Len(t, xl, 1)
	form, ok := xl[0].LiteralForm()
	require.True(t, ok)
	assert.Equal(t, "tree", form.Value())
}

func TestNewNilFetcher(t *testing.T) {
	_, err := New[*entity.Label](nil)
	assert.Error(t, err)
}
