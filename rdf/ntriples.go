package rdf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cayleygraph/quad"
	qrdf "github.com/cayleygraph/quad/voc/rdf"
)

// RDFType is the rdf:type predicate.
var RDFType = Iri{uri: string(quad.IRI(qrdf.Type).Full())}

// ToQuadValue converts a term into its quad representation.
// Inlined resources collapse to their subject identifier.
func ToQuadValue(t Term) quad.Value {
	switch x := t.(type) {
	case nil:
		return nil
	case Iri:
		return iriValue(x)
	case Literal:
		switch {
		case x.lang != "":
			return quad.LangString{Value: quad.String(x.value), Lang: x.lang}
		case x.datatype.IsZero() || x.datatype.uri == XSDString.uri:
			return quad.String(x.value)
		default:
			return quad.TypedString{Value: quad.String(x.value), Type: quad.IRI(x.datatype.uri)}
		}
	default:
		if iri, ok := IRIOf(t); ok {
			return iriValue(iri)
		}
		return quad.String(t.String())
	}
}

func iriValue(i Iri) quad.Value {
	if i.IsBlank() {
		return quad.BNode(i.uri[2:])
	}
	return quad.IRI(i.uri)
}

// FromQuadValue converts a decoded quad value into a term.
// Blank nodes become "_:label" identifiers.
func FromQuadValue(v quad.Value) (Term, error) {
	switch x := v.(type) {
	case quad.IRI:
		return Iri{uri: string(x)}, nil
	case quad.BNode:
		return Iri{uri: "_:" + string(x)}, nil
	case quad.String:
		return NewString(string(x)), nil
	case quad.LangString:
		return NewLangString(string(x.Value), x.Lang), nil
	case quad.TypedString:
		return NewLiteral(string(x.Value), "", Iri{uri: string(x.Type)}), nil
	case quad.Bool:
		return NewBoolean(bool(x)), nil
	case quad.Int:
		return NewInteger(int64(x)), nil
	case quad.Float:
		return NewLiteral(strconv.FormatFloat(float64(x), 'g', -1, 64), "", Iri{uri: XSD + "double"}), nil
	case quad.Time:
		return NewDateTime(time.Time(x)), nil
	default:
		return nil, &TypeMismatchError{Want: "IRI, blank node or literal", Got: v}
	}
}

// FromQuad converts a decoded statement into a triple. The graph label is ignored.
func FromQuad(q quad.Quad) (Triple, error) {
	s, err := FromQuadValue(q.Subject)
	if err != nil {
		return Triple{}, fmt.Errorf("subject: %w", err)
	}
	subject, ok := s.(Iri)
	if !ok {
		return Triple{}, &TypeMismatchError{Want: "IRI subject", Got: q.Subject}
	}
	p, err := FromQuadValue(q.Predicate)
	if err != nil {
		return Triple{}, fmt.Errorf("predicate: %w", err)
	}
	predicate, ok := p.(Iri)
	if !ok {
		return Triple{}, &TypeMismatchError{Want: "IRI predicate", Got: q.Predicate}
	}
	object, err := FromQuadValue(q.Object)
	if err != nil {
		return Triple{}, fmt.Errorf("object: %w", err)
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

// ToQuad converts a triple into a quad in the default graph.
func ToQuad(t Triple) quad.Quad {
	return quad.Quad{
		Subject:   iriValue(t.Subject),
		Predicate: iriValue(t.Predicate),
		Object:    ToQuadValue(t.Object),
	}
}

// FormatTerm renders a term in N-Triples syntax, escaping IRIs and literal values.
func FormatTerm(t Term) string {
	v := ToQuadValue(t)
	if v == nil {
		return ""
	}
	if iri, ok := v.(quad.IRI); ok {
		return "<" + EscapeIRI(string(iri)) + ">"
	}
	return v.String()
}
