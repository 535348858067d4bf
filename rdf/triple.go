package rdf

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	Subject   Iri
	Predicate Iri
	Object    Term
}

// NewTriple builds a triple.
func NewTriple(subject, predicate Iri, object Term) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// Language returns the language tag of a literal object, or "".
func (t Triple) Language() string { return LanguageOf(t.Object) }

// ObjectIRI returns the object identifier for reference-valued triples.
func (t Triple) ObjectIRI() (Iri, bool) {
	if t.Object == nil || t.Object.Kind() != KindIRI {
		return Iri{}, false
	}
	return IRIOf(t.Object)
}

// String renders the triple as one N-Triples statement without the trailing newline.
func (t Triple) String() string {
	return FormatTerm(t.Subject) + " " + FormatTerm(t.Predicate) + " " + FormatTerm(t.Object) + " ."
}
