package sparql

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semskos/rdf"
)

const describeBody = `<http://example.com/a> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#Concept> .
<http://example.com/a> <http://www.w3.org/2004/02/skos/core#prefLabel> "tree"@en .
`

func TestDescribe(t *testing.T) {
	var gotQuery, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("query")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/n-triples")
		_, _ = w.Write([]byte(describeBody))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	triples, err := c.Describe(context.Background(), "DESCRIBE <http://example.com/a>")
	require.NoError(t, err)

	assert.Equal(t, "DESCRIBE <http://example.com/a>", gotQuery)
	assert.Equal(t, "application/n-triples", gotAccept)
	require.Len(t, triples, 2)
	assert.Equal(t, rdf.NewLangString("tree", "en"), triples[1].Object)
}

func TestDescribeEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	triples, err := c.Describe(context.Background(), "DESCRIBE <http://example.com/none>")
	require.NoError(t, err)
	assert.Empty(t, triples)
}

func TestDescribeStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, strings.Repeat("x", 10000), http.StatusBadRequest)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Describe(context.Background(), "DESCRIBE nonsense")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Len(t, statusErr.Body, maxErrorBodySize)
}

func TestDescribeContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Describe(ctx, "DESCRIBE <http://example.com/a>")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUpdates(t *testing.T) {
	var updates []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		updates = append(updates, r.PostForm.Get("update"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := New(server.URL+"/query", WithUpdateURL(server.URL+"/update"))
	require.NoError(t, err)

	a := rdf.MustIri("http://example.com/a")
	ctx := context.Background()

	require.NoError(t, c.Insert(ctx, []rdf.Triple{
		rdf.NewTriple(a, rdf.MustIri("http://example.com/p"), rdf.NewString("v")),
	}))
	require.NoError(t, c.Insert(ctx, nil))
	require.NoError(t, c.DeleteSubject(ctx, a))

	require.Len(t, updates, 2)
	assert.Equal(t, "INSERT DATA {\n<http://example.com/a> <http://example.com/p> \"v\" .\n}", updates[0])
	assert.Equal(t, "DELETE WHERE { <http://example.com/a> ?p ?o }", updates[1])
}

func TestUpdateWithoutEndpoint(t *testing.T) {
	c, err := New("http://localhost:1/query")
	require.NoError(t, err)

	err = c.DeleteSubject(context.Background(), rdf.MustIri("http://example.com/a"))
	assert.Error(t, err)
}

func TestNewInvalidURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}
