package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semskos/rdf"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, info := range FormatRegistry {
		if name == string(f) || name == info.Extension || "."+name == info.Extension {
			return f, nil
		}
	}
	switch name {
	case "nt", "n-triples":
		return FormatNTriples, nil
	case "json", "json-ld":
		return FormatJSONLD, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer using the given prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	w := &TurtleWriter{prefixes: make(map[string]string, len(prefixes))}
	for k, v := range prefixes {
		w.prefixes[k] = v
	}
	return w
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteSubject writes one subject block. Inlined resources become nested
// blank node property lists.
func (w *TurtleWriter) WriteSubject(subject rdf.Iri, triples []rdf.Triple) {
	w.sb.WriteString(w.iri(subject))
	w.sb.WriteString("\n")
	w.writePairs(triples, 1)
	w.sb.WriteString(" .\n")
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) writePairs(triples []rdf.Triple, depth int) {
	indent := strings.Repeat("    ", depth)
	for i, t := range triples {
		if i > 0 {
			w.sb.WriteString(" ;\n")
		}
		w.sb.WriteString(indent)
		if t.Predicate.Equal(rdf.RDFType) {
			w.sb.WriteString("a")
		} else {
			w.sb.WriteString(w.iri(t.Predicate))
		}
		w.sb.WriteString(" ")
		if inner, ok := inlined(t.Object); ok {
			w.sb.WriteString("[\n")
			w.writePairs(inner.Triples(), depth+1)
			w.sb.WriteString("\n" + indent + "]")
			continue
		}
		w.sb.WriteString(w.term(t.Object))
	}
}

func (w *TurtleWriter) term(t rdf.Term) string {
	if iri, ok := t.(rdf.Iri); ok {
		return w.iri(iri)
	}
	return rdf.FormatTerm(t)
}

// iri renders a prefixed name when a prefix matches and the local part is safe.
func (w *TurtleWriter) iri(i rdf.Iri) string {
	uri := i.URI()
	best := ""
	for prefix, ns := range w.prefixes {
		if !strings.HasPrefix(uri, ns) || !safeLocalName(uri[len(ns):]) {
			continue
		}
		if best == "" || len(ns) > len(w.prefixes[best]) {
			best = prefix
		}
	}
	if best == "" {
		return rdf.FormatTerm(i)
	}
	return best + ":" + uri[len(w.prefixes[best]):]
}

func safeLocalName(local string) bool {
	if local == "" {
		return false
	}
	for i, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case (r >= '0' && r <= '9') || r == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id,omitempty"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	// Create a map with all fields
	m := make(map[string]any, len(n.Properties)+2)
	if n.ID != "" {
		m["@id"] = n.ID
	}
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// NewJSONLDNode builds a node from one subject's triples. Values of a repeated
// predicate are collected in triple order; inlined resources nest as anonymous nodes.
func NewJSONLDNode(subject rdf.Iri, triples []rdf.Triple) JSONLDNode {
	node := JSONLDNode{ID: subject.URI(), Properties: make(map[string]any)}
	for _, t := range triples {
		if t.Predicate.Equal(rdf.RDFType) {
			if iri, ok := t.ObjectIRI(); ok {
				node.Type = append(node.Type, iri.URI())
				continue
			}
		}
		key := t.Predicate.URI()
		var value any
		if inner, ok := inlined(t.Object); ok {
			value = NewJSONLDNode(rdf.Iri{}, inner.Triples())
		} else {
			value = jsonldValue(t.Object)
		}
		switch existing := node.Properties[key].(type) {
		case nil:
			node.Properties[key] = value
		case []any:
			node.Properties[key] = append(existing, value)
		default:
			node.Properties[key] = []any{existing, value}
		}
	}
	return node
}

func jsonldValue(t rdf.Term) any {
	switch v := t.(type) {
	case rdf.Iri:
		return map[string]string{"@id": v.URI()}
	case rdf.Literal:
		switch {
		case v.Lang() != "":
			return map[string]string{"@value": v.Value(), "@language": v.Lang()}
		case v.Datatype().IsZero() || v.Datatype().Equal(rdf.XSDString):
			return v.Value()
		default:
			return map[string]string{"@value": v.Value(), "@type": v.Datatype().URI()}
		}
	default:
		if iri, ok := rdf.IRIOf(t); ok {
			return map[string]string{"@id": iri.URI()}
		}
		return t.String()
	}
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext sets the @context with prefixes.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(node JSONLDNode) {
	w.doc.Graph = append(w.doc.Graph, node)
}

// Marshal returns the indented JSON-LD document.
func (w *JSONLDWriter) Marshal() (string, error) {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data) + "\n", nil
}
