package entity

import (
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/resource"
)

// User is a person with an account in a tenant.
type User struct {
	*resource.Entity
}

// NewUser creates an empty user typed foaf:Person.
func NewUser(subject rdf.Iri) *User {
	return &User{Entity: newTyped(subject, UserVocabulary, UserType)}
}

// UserFromTriples rebuilds a user from its subject group.
func UserFromTriples(subject rdf.Iri, triples []rdf.Triple) *User {
	return &User{Entity: resource.FromTriples(subject, triples, UserVocabulary)}
}

// UUID returns the openskos:uuid of the user, or "".
func (u *User) UUID() string { return text(u.Entity, "uuid") }

// Name returns the display name.
func (u *User) Name() string { return text(u.Entity, "name") }

// Email returns the login address.
func (u *User) Email() string { return text(u.Entity, "email") }

// Role returns the user role, e.g. "editor".
func (u *User) Role() string { return text(u.Entity, "role") }
