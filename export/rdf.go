// Package export serializes resources to Turtle, N-Triples and JSON-LD.
package export

import (
	"fmt"
	"strconv"

	"github.com/c360studio/semskos/graphstore"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/repository"
	"github.com/c360studio/semskos/resource"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

// RDFExporter collects resources and serializes them in one of the supported formats.
type RDFExporter struct {
	profile   ProfileConfig
	resources []resource.Resource
	prefixes  map[string]string
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:   GetProfileConfig(profile),
		resources: make([]resource.Resource, 0),
		prefixes:  defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":      openskos.RDFNamespace,
		"xsd":      rdf.XSD,
		"skos":     openskos.SkosNamespace,
		"skosxl":   openskos.SkosXLNamespace,
		"dcterms":  openskos.DcTermsNamespace,
		"foaf":     openskos.FoafNamespace,
		"vcard":    openskos.VCardNamespace,
		"org":      openskos.OrgNamespace,
		"openskos": openskos.OpenSkosNamespace,
	}
}

// SetPrefix sets a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// AddResource adds resources to be exported, in order.
func (e *RDFExporter) AddResource(resources ...resource.Resource) {
	e.resources = append(e.resources, resources...)
}

// AddTriples adds raw triples, grouped per subject in first-appearance order.
func (e *RDFExporter) AddTriples(triples []rdf.Triple) {
	order, groups := repository.GroupTriples(triples)
	for _, subject := range order {
		e.resources = append(e.resources, rawResource{subject: subject, triples: groups[subject.URI()]})
	}
}

// Len returns the number of collected resources.
func (e *RDFExporter) Len() int { return len(e.resources) }

// Export serializes all resources to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples()
	case FormatJSONLD:
		return e.toJSONLD()
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter(e.prefixes)
	w.WritePrefixes()
	for i, r := range e.resources {
		triples := e.profile.Filter(r.Triples())
		if len(triples) == 0 {
			continue
		}
		if i > 0 {
			w.WriteBlank()
		}
		w.WriteSubject(r.IRI(), triples)
	}
	return w.String()
}

// toNTriples serializes to N-Triples format. Inlined resources are flattened
// onto fresh blank nodes.
func (e *RDFExporter) toNTriples() (string, error) {
	var flat []rdf.Triple
	blanks := 0
	var flatten func(subject rdf.Iri, triples []rdf.Triple)
	flatten = func(subject rdf.Iri, triples []rdf.Triple) {
		for _, t := range e.profile.Filter(triples) {
			inner, ok := inlined(t.Object)
			if !ok {
				flat = append(flat, rdf.NewTriple(subject, t.Predicate, t.Object))
				continue
			}
			blanks++
			node := rdf.MustIri("_:b" + strconv.Itoa(blanks))
			flat = append(flat, rdf.NewTriple(subject, t.Predicate, node))
			flatten(node, inner.Triples())
		}
	}
	for _, r := range e.resources {
		flatten(r.IRI(), r.Triples())
	}

	out, err := graphstore.FormatNTriples(flat)
	if err != nil {
		return "", fmt.Errorf("export n-triples: %w", err)
	}
	return out, nil
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() (string, error) {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)
	for _, r := range e.resources {
		triples := e.profile.Filter(r.Triples())
		if len(triples) == 0 {
			continue
		}
		w.AddNode(NewJSONLDNode(r.IRI(), triples))
	}
	return w.Marshal()
}

// inlined returns the resource behind an object enriched in place.
func inlined(t rdf.Term) (resource.Resource, bool) {
	if t == nil || t.Kind() != rdf.KindResource {
		return nil, false
	}
	r, ok := t.(resource.Resource)
	return r, ok
}

type rawResource struct {
	subject rdf.Iri
	triples []rdf.Triple
}

func (r rawResource) IRI() rdf.Iri          { return r.subject }
func (r rawResource) Triples() []rdf.Triple { return r.triples }
