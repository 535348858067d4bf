package natsgraph

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semskos/rdf"
)

// IngestSubject is where entity updates are published for graph ingestion.
const IngestSubject = "graph.ingest.entity"

// Subject suffixes under the configured prefix.
const (
	describeSuffix = ".query.describe"
	deleteSuffix   = ".mutation.delete"
)

// EntityIngestMessage carries the triples of one subject for graph ingestion.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type describeRequest struct {
	Query string `json:"query"`
}

// describeResponse carries the result as an N-Triples document.
type describeResponse struct {
	Triples string `json:"triples,omitempty"`
	Error   string `json:"error,omitempty"`
}

type deleteRequest struct {
	Subject string `json:"subject"`
}

type deleteResponse struct {
	Error string `json:"error,omitempty"`
}

// RemoteError is an error reported by the responder.
type RemoteError struct {
	Subject string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("graph responder on %s: %s", e.Subject, e.Message)
}

// toMessageTriple converts a triple to the ingest format. Identifier objects
// carry no datatype; language-tagged literals carry "@lang" as datatype.
func toMessageTriple(t rdf.Triple, source, correlation string, now time.Time) message.Triple {
	mt := message.Triple{
		Subject:    t.Subject.URI(),
		Predicate:  t.Predicate.URI(),
		Source:     source,
		Timestamp:  now,
		Confidence: 1.0,
		Context:    correlation,
	}
	switch obj := t.Object.(type) {
	case rdf.Literal:
		mt.Object = obj.Value()
		if obj.Lang() != "" {
			mt.Datatype = "@" + obj.Lang()
		} else {
			mt.Datatype = obj.Datatype().URI()
		}
	default:
		if iri, ok := rdf.IRIOf(obj); ok {
			mt.Object = iri.URI()
		}
	}
	return mt
}

// fromMessageTriple reverses toMessageTriple.
func fromMessageTriple(mt message.Triple) (rdf.Triple, error) {
	subject, err := rdf.NewIri(mt.Subject)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("subject: %w", err)
	}
	predicate, err := rdf.NewIri(mt.Predicate)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	value := fmt.Sprint(mt.Object)
	if s, ok := mt.Object.(string); ok {
		value = s
	}

	var object rdf.Term
	switch {
	case mt.Datatype == "":
		iri, err := rdf.NewIri(value)
		if err != nil {
			return rdf.Triple{}, fmt.Errorf("object: %w", err)
		}
		object = iri
	case strings.HasPrefix(mt.Datatype, "@"):
		object = rdf.NewLangString(value, mt.Datatype[1:])
	default:
		object = rdf.NewLiteral(value, "", rdf.MustIri(mt.Datatype))
	}
	return rdf.NewTriple(subject, predicate, object), nil
}
