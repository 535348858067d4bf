package entity

import (
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// Institution is a tenant organization.
type Institution struct {
	*resource.Entity
}

// NewInstitution creates an empty institution typed org:FormalOrganization.
func NewInstitution(subject rdf.Iri) *Institution {
	return &Institution{Entity: newTyped(subject, InstitutionVocabulary, InstitutionType)}
}

// InstitutionFromTriples rebuilds an institution from its subject group.
func InstitutionFromTriples(subject rdf.Iri, triples []rdf.Triple) *Institution {
	return &Institution{Entity: resource.FromTriples(subject, triples, InstitutionVocabulary)}
}

// UUID returns the openskos:uuid of the institution, or "".
func (i *Institution) UUID() string { return text(i.Entity, "uuid") }

// Code returns the tenant code.
func (i *Institution) Code() string { return text(i.Entity, "code") }

// Name returns the display name.
func (i *Institution) Name() string { return text(i.Entity, "name") }

// Email returns the contact address.
func (i *Institution) Email() string { return text(i.Entity, "email") }

// StatusesEnabled reports whether editorial statuses are enforced for the tenant.
func (i *Institution) StatusesEnabled() bool { return flag(i.Entity, "enableStatusesSystem") }

// SkosXLEnabled reports whether the tenant maintains SKOS-XL labels.
func (i *Institution) SkosXLEnabled() bool { return flag(i.Entity, "enableSkosXl") }
