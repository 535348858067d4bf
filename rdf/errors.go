package rdf

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrTypeMismatch is returned when a value of the wrong shape is used to build a term.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLiteralParse is returned when a lexical form cannot be parsed into its datatype.
	ErrLiteralParse = errors.New("literal parse error")
)

// TypeMismatchError reports the rejected input of a term constructor.
type TypeMismatchError struct {
	Want string
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %T", e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// LiteralParseError reports a lexical form that is invalid for its datatype.
type LiteralParseError struct {
	Lexical  string
	Datatype Iri
	Err      error
}

func (e *LiteralParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %q as %s: %v", e.Lexical, e.Datatype, e.Err)
	}
	return fmt.Sprintf("parse %q as %s", e.Lexical, e.Datatype)
}

func (e *LiteralParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLiteralParse}
	}
	return []error{ErrLiteralParse, e.Err}
}
