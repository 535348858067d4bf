package rdf

import (
	"strconv"
	"strings"
	"time"
)

// XSD is the XML Schema datatype namespace.
const XSD = "http://www.w3.org/2001/XMLSchema#"

// Datatypes understood by the literal parsers. Any other datatype IRI is carried verbatim.
var (
	XSDString   = Iri{uri: XSD + "string"}
	XSDBoolean  = Iri{uri: XSD + "boolean"}
	XSDDateTime = Iri{uri: XSD + "dateTime"}
	XSDInteger  = Iri{uri: XSD + "integer"}

	// RDFLangString is the datatype of language-tagged strings.
	RDFLangString = Iri{uri: "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"}
)

// Accepted lexical layouts for xsd:dateTime, tried in order.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Literal is a typed scalar with an optional language tag.
type Literal struct {
	value    string
	lang     string
	datatype Iri
}

// NewLiteral builds a literal from its lexical form. A language tag forces
// rdf:langString; an empty datatype without language defaults to xsd:string.
func NewLiteral(value, lang string, datatype Iri) Literal {
	switch {
	case lang != "":
		datatype = RDFLangString
	case datatype.IsZero():
		datatype = XSDString
	}
	return Literal{value: value, lang: lang, datatype: datatype}
}

// NewString builds a plain xsd:string literal.
func NewString(value string) Literal { return NewLiteral(value, "", XSDString) }

// NewLangString builds a language-tagged string.
func NewLangString(value, lang string) Literal { return NewLiteral(value, lang, Iri{}) }

// NewBoolean builds an xsd:boolean literal.
func NewBoolean(v bool) Literal {
	return NewLiteral(strconv.FormatBool(v), "", XSDBoolean)
}

// NewInteger builds an xsd:integer literal.
func NewInteger(v int64) Literal {
	return NewLiteral(strconv.FormatInt(v, 10), "", XSDInteger)
}

// NewDateTime builds an xsd:dateTime literal in RFC3339 form. Fractional
// seconds are kept without trailing zeros.
func NewDateTime(t time.Time) Literal {
	return NewLiteral(t.Format(time.RFC3339Nano), "", XSDDateTime)
}

// Value returns the lexical form.
func (l Literal) Value() string { return l.value }

// Lang returns the language tag, or "".
func (l Literal) Lang() string { return l.lang }

// Datatype returns the datatype IRI.
func (l Literal) Datatype() Iri { return l.datatype }

// Kind implements Term.
func (l Literal) Kind() TermKind { return KindLiteral }

// String returns the lexical form.
func (l Literal) String() string { return l.value }

// Bool interprets the lexical form permissively.
func (l Literal) Bool() bool { return ParseBoolean(l.value) }

// Int parses the lexical form as a base-10 integer.
func (l Literal) Int() (int64, error) {
	lit, err := ParseInteger(l.value)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(lit.value, 10, 64)
	return n, nil
}

// Time parses the lexical form as an xsd:dateTime.
func (l Literal) Time() (time.Time, error) {
	return parseTime(l.value)
}

// ParseBoolean is a permissive truthy parse: 1, true, t, yes, y and on (any case)
// are true, everything else is false.
func ParseBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// ParseBooleanLiteral converts a raw string into an xsd:boolean literal.
func ParseBooleanLiteral(raw string) Literal {
	return NewBoolean(ParseBoolean(raw))
}

// ParseDateTime converts a raw string into an xsd:dateTime literal.
func ParseDateTime(raw string) (Literal, error) {
	t, err := parseTime(raw)
	if err != nil {
		return Literal{}, err
	}
	return NewDateTime(t), nil
}

// ParseInteger converts a raw string into an xsd:integer literal.
func ParseInteger(raw string) (Literal, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Literal{}, &LiteralParseError{Lexical: raw, Datatype: XSDInteger, Err: err}
	}
	return NewInteger(n), nil
}

// ParseLiteral converts a raw lexical string into a literal of the given datatype.
// Datatypes without a parser are carried verbatim.
func ParseLiteral(raw string, datatype Iri) (Literal, error) {
	switch datatype.uri {
	case XSDBoolean.uri:
		return ParseBooleanLiteral(raw), nil
	case XSDDateTime.uri:
		return ParseDateTime(raw)
	case XSDInteger.uri:
		return ParseInteger(raw)
	default:
		return NewLiteral(raw, "", datatype), nil
	}
}

func parseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &LiteralParseError{Lexical: raw, Datatype: XSDDateTime, Err: lastErr}
}
