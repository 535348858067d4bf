package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semskos/config"
	"github.com/c360studio/semskos/graphstore/graphstoretest"
	"github.com/c360studio/semskos/graphstore/natsgraph"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMeteredClient(t *testing.T) {
	subject := rdf.MustIri(conceptIRI)
	store := graphstoretest.New().On(conceptIRI,
		rdf.NewTriple(subject, rdf.RDFType, rdf.MustIri(openskos.ClassConcept)))

	m, err := newMeteredClient(store, prometheus.NewRegistry())
	require.NoError(t, err)

	ctx := context.Background()
	triples, err := m.Describe(ctx, "DESCRIBE <"+conceptIRI+">")
	require.NoError(t, err)
	assert.Len(t, triples, 1)
	require.NoError(t, m.DeleteSubject(ctx, subject))

	store.Err = errors.New("boom")
	_, err = m.Describe(ctx, "DESCRIBE <"+conceptIRI+">")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("describe", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("describe", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("delete", "ok")))
}

func TestAppRepositoriesRequireNamespace(t *testing.T) {
	cfg := config.DefaultConfig()
	delete(cfg.Namespaces, string(openskos.EntityTypeUser))

	app, err := NewApp(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, app.Connect())

	_, err = app.ResourcesOf(openskos.EntityTypeUser)
	assert.Error(t, err)

	repo, err := app.ResourcesOf(openskos.EntityTypeSet)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestServeBridgesToSPARQL(t *testing.T) {
	_, url := newEndpoint(t, [2]string{"<" + conceptIRI + ">", conceptBody})

	cfg := config.DefaultConfig()
	cfg.Graph.QueryURL = url + "/query"
	cfg.NATS.SubjectPrefix = "test.graph"

	app, err := NewApp(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, app.StartEmbeddedNATS())
	defer app.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, "") }()

	client, err := natsgraph.New(app.natsConn, natsgraph.WithPrefix("test.graph"))
	require.NoError(t, err)

	var triples []rdf.Triple
	require.Eventually(t, func() bool {
		reqCtx, reqCancel := context.WithTimeout(context.Background(), time.Second)
		defer reqCancel()
		triples, err = client.Describe(reqCtx, "DESCRIBE <"+conceptIRI+">")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.Len(t, triples, 4)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
