package export

import (
	"strings"

	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

// Profile determines which predicates survive an export.
type Profile string

const (
	// ProfileFull exports every triple as stored.
	ProfileFull Profile = "full"

	// ProfileSKOS keeps RDF, SKOS, SKOS-XL and Dublin Core statements only,
	// dropping service bookkeeping such as tenants, statuses and account data.
	ProfileSKOS Profile = "skos"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// Namespaces lists the predicate namespaces kept. Empty keeps everything.
	Namespaces []string
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileFull: {
		Name:        ProfileFull,
		Description: "All stored statements",
	},
	ProfileSKOS: {
		Name:        ProfileSKOS,
		Description: "RDF, SKOS, SKOS-XL and Dublin Core statements only",
		Namespaces: []string{
			openskos.RDFNamespace,
			openskos.SkosNamespace,
			openskos.SkosXLNamespace,
			openskos.DcTermsNamespace,
		},
	},
}

// GetProfileConfig returns the configuration for a profile.
// Unknown profiles fall back to ProfileFull.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileFull]
}

// Keeps reports whether a predicate is exported under the profile.
func (c ProfileConfig) Keeps(predicate rdf.Iri) bool {
	if len(c.Namespaces) == 0 {
		return true
	}
	for _, ns := range c.Namespaces {
		if strings.HasPrefix(predicate.URI(), ns) {
			return true
		}
	}
	return false
}

// Filter returns the triples the profile keeps, preserving order.
func (c ProfileConfig) Filter(triples []rdf.Triple) []rdf.Triple {
	if len(c.Namespaces) == 0 {
		return triples
	}
	kept := make([]rdf.Triple, 0, len(triples))
	for _, t := range triples {
		if c.Keeps(t.Predicate) {
			kept = append(kept, t)
		}
	}
	return kept
}
