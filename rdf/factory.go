package rdf

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyID is returned when minting an identifier from an empty local id.
var ErrEmptyID = errors.New("empty resource id")

// IRIFactory mints fully qualified identifiers from opaque local ids
// (short codes or UUIDs) under a namespace prefix.
type IRIFactory struct {
	namespace string
}

// NewIRIFactory validates the namespace and returns a factory for it.
// A trailing '/' is added unless the namespace already ends in '/' or '#'.
func NewIRIFactory(namespace string) (*IRIFactory, error) {
	u, err := url.Parse(namespace)
	if err != nil {
		return nil, fmt.Errorf("parse namespace: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("namespace %q is not absolute", namespace)
	}
	if !strings.HasSuffix(namespace, "/") && !strings.HasSuffix(namespace, "#") {
		namespace += "/"
	}
	return &IRIFactory{namespace: namespace}, nil
}

// Namespace returns the normalized namespace prefix.
func (f *IRIFactory) Namespace() string { return f.namespace }

// Make returns namespace + escaped id.
func (f *IRIFactory) Make(id string) (Iri, error) {
	if id == "" {
		return Iri{}, ErrEmptyID
	}
	return Iri{uri: f.namespace + url.PathEscape(id)}, nil
}

// LocalID strips the namespace from an identifier minted by this factory.
func (f *IRIFactory) LocalID(iri Iri) (string, bool) {
	rest, ok := strings.CutPrefix(iri.uri, f.namespace)
	if !ok || rest == "" {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}
