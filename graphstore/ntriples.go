package graphstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/c360studio/semskos/rdf"
)

// MediaTypeNTriples is the media type of N-Triples payloads.
const MediaTypeNTriples = "application/n-triples"

// DecodeNTriples reads an N-Triples (or N-Quads) stream. Graph labels are
// ignored. Literals keep their lexical form.
func DecodeNTriples(r io.Reader) ([]rdf.Triple, error) {
	reader := nquads.NewReader(r, true)
	var triples []rdf.Triple
	for {
		q, err := reader.ReadQuad()
		if errors.Is(err, io.EOF) {
			return triples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read statement %d: %w", len(triples)+1, err)
		}
		t, err := rdf.FromQuad(q)
		if err != nil {
			return nil, fmt.Errorf("convert statement %d: %w", len(triples)+1, err)
		}
		triples = append(triples, t)
	}
}

// EncodeNTriples writes triples as N-Triples.
func EncodeNTriples(w io.Writer, triples []rdf.Triple) error {
	writer := nquads.NewWriter(w)
	quads := make([]quad.Quad, len(triples))
	for i, t := range triples {
		quads[i] = rdf.ToQuad(t)
	}
	if _, err := writer.WriteQuads(quads); err != nil {
		return fmt.Errorf("write statements: %w", err)
	}
	return writer.Close()
}

// FormatNTriples returns triples as an N-Triples document.
func FormatNTriples(triples []rdf.Triple) (string, error) {
	var buf bytes.Buffer
	if err := EncodeNTriples(&buf, triples); err != nil {
		return "", err
	}
	return buf.String(), nil
}
