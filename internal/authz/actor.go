package authz

import "github.com/google/uuid"

// Actor is the authenticated identity performing a request. It is derived
// from a verified bearer token and is immutable for the duration of the
// request.
type Actor struct {
	ID        uuid.UUID
	Role      Role
	CompanyID string
}

// Target describes the record an action is aimed at, reduced to the
// fields the permission model depends on. For user targets, ID is the
// target user's ID and Role their role. For owned records (tows,
// expenses), OwnerID is the creating user's ID. For company targets,
// CompanyID is the company's own tenant key.
type Target struct {
	ID        uuid.UUID
	CompanyID string
	OwnerID   uuid.UUID
	Role      Role
}

// IsSelf reports whether the target is the actor's own user record.
func (t *Target) IsSelf(actor Actor) bool {
	return t != nil && t.ID != uuid.Nil && t.ID == actor.ID
}
