package openskos

import (
	"strings"
	"unicode"

	"github.com/c360studio/semstreams/vocabulary"
)

func init() {
	for _, t := range EntityTypes {
		for _, b := range Fields(t) {
			vocabulary.Register(PredicateName(t, b.Field),
				vocabulary.WithDescription(b.Description),
				vocabulary.WithDataType(b.DataType),
				vocabulary.WithIRI(b.IRI))
		}
	}
}

// PredicateName returns the dotted semstreams predicate for a field,
// e.g. ("concept", "prefLabel") → "openskos.concept.pref_label".
func PredicateName(t EntityType, field string) string {
	return "openskos." + string(t) + "." + snakeCase(field)
}

// FieldIRI resolves a field of an entity type to its predicate IRI through the
// semstreams predicate registry.
func FieldIRI(t EntityType, field string) (string, bool) {
	meta := vocabulary.GetPredicateMetadata(PredicateName(t, field))
	if meta == nil || meta.StandardIRI == "" {
		return "", false
	}
	return meta.StandardIRI, true
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
