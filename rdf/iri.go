package rdf

import "strings"

// Iri is an absolute resource identifier. Equality is string equality.
type Iri struct {
	uri string
}

// NewIri builds an identifier from a string or copies another identifier.
// Any other input, including the empty string, is a TypeMismatchError.
func NewIri(v any) (Iri, error) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return Iri{}, &TypeMismatchError{Want: "non-empty IRI string", Got: x}
		}
		return Iri{uri: x}, nil
	case Iri:
		if x.uri == "" {
			return Iri{}, &TypeMismatchError{Want: "non-empty IRI", Got: x}
		}
		return Iri{uri: x.uri}, nil
	case *Iri:
		if x == nil || x.uri == "" {
			return Iri{}, &TypeMismatchError{Want: "non-empty IRI", Got: x}
		}
		return Iri{uri: x.uri}, nil
	default:
		return Iri{}, &TypeMismatchError{Want: "string or Iri", Got: v}
	}
}

// MustIri is NewIri for compile-time constants. It panics on invalid input.
func MustIri(uri string) Iri {
	iri, err := NewIri(uri)
	if err != nil {
		panic("rdf: " + err.Error())
	}
	return iri
}

// URI returns the identifier string.
func (i Iri) URI() string { return i.uri }

// String returns the identifier string.
func (i Iri) String() string { return i.uri }

// Kind implements Term.
func (i Iri) Kind() TermKind { return KindIRI }

// IRI implements Identified.
func (i Iri) IRI() Iri { return i }

// IsZero reports whether the identifier is empty.
func (i Iri) IsZero() bool { return i.uri == "" }

// Equal reports whether two identifiers are the same string.
func (i Iri) Equal(o Iri) bool { return i.uri == o.uri }

// IsBlank reports whether the identifier is a blank node label ("_:x").
func (i Iri) IsBlank() bool { return strings.HasPrefix(i.uri, "_:") }

// SetURI overwrites the identifier in place.
// Only cross-link enrichment uses this, while rebasing an inlined copy.
func (i *Iri) SetURI(uri string) { i.uri = uri }

// EscapeIRI percent-encodes the characters that may not appear between '<' and '>'
// in N-Triples and SPARQL IRI references.
func EscapeIRI(uri string) string {
	if !strings.ContainsFunc(uri, forbiddenInIRI) {
		return uri
	}
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(uri) + 8)
	for _, r := range uri {
		if !forbiddenInIRI(r) {
			b.WriteRune(r)
			continue
		}
		// every forbidden rune is ASCII
		c := byte(r)
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func forbiddenInIRI(r rune) bool {
	if r <= 0x20 {
		return true
	}
	switch r {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}
