package rdf

// TermKind discriminates the object position of a triple.
type TermKind int

const (
	// KindIRI is a resource identifier.
	KindIRI TermKind = iota
	// KindLiteral is a typed scalar value.
	KindLiteral
	// KindResource is a fully resolved resource inlined by cross-link enrichment.
	KindResource
)

// String returns the kind name.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Term is the object of a triple: an Iri, a Literal, or an inlined resource.
type Term interface {
	Kind() TermKind
	String() string
}

// Identified is implemented by terms that carry a subject identifier.
// Iri and inlined resources both satisfy it.
type Identified interface {
	Term
	IRI() Iri
}

// Sourced is implemented by inlined resources that were moved onto another
// subject. Source returns the identifier the resource was fetched under.
type Sourced interface {
	Term
	Source() Iri
}

// IRIOf returns the identifier behind a term, if it has one. For an inlined
// resource this is the identifier it was fetched under, so writing the triple
// back keeps the original link.
func IRIOf(t Term) (Iri, bool) {
	if t == nil {
		return Iri{}, false
	}
	if src, ok := t.(Sourced); ok {
		return src.Source(), true
	}
	if id, ok := t.(Identified); ok {
		return id.IRI(), true
	}
	return Iri{}, false
}

// LanguageOf returns the language tag of a literal term, or "" for anything else.
func LanguageOf(t Term) string {
	if lit, ok := t.(Literal); ok {
		return lit.Lang()
	}
	return ""
}
