package repository

import "github.com/c360studio/semskos/rdf"

// GroupTriples splits a flat triple stream by subject in one pass. Subjects are
// listed in order of first appearance and groups are keyed by their string form;
// each group keeps the arrival order of its triples. Triples without a subject
// are dropped.
func GroupTriples(triples []rdf.Triple) ([]rdf.Iri, map[string][]rdf.Triple) {
	var order []rdf.Iri
	groups := make(map[string][]rdf.Triple)
	for _, t := range triples {
		if t.Subject.IsZero() {
			continue
		}
		key := t.Subject.URI()
		if _, seen := groups[key]; !seen {
			order = append(order, t.Subject)
		}
		groups[key] = append(groups[key], t)
	}
	return order, groups
}
