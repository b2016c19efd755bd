package authz

import (
	apperrors "fleet-management-backend/internal/errors"

	"github.com/google/uuid"
)

// Resource identifies an entity collection subject to permission checks
type Resource string

const (
	ResourceUser    Resource = "user"
	ResourceCompany Resource = "company"
	ResourceVehicle Resource = "vehicle"
	ResourceDriver  Resource = "driver"
	ResourceTow     Resource = "tow"
	ResourceExpense Resource = "expense"
)

// Action identifies the class of operation being evaluated
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Effect is the outcome of an evaluation
type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
	EffectAllowFiltered
)

// Decision is the result of evaluating an actor's request against the
// policy tables. For partial updates the decision carries the permitted
// field names.
type Decision struct {
	Effect Effect
	Reason string
	Fields []string
	err    error
}

// Allowed reports whether the action may proceed.
func (d Decision) Allowed() bool {
	return d.Effect != EffectDeny
}

// Err returns the typed error behind a denial, nil otherwise.
func (d Decision) Err() error {
	return d.err
}

// PermitsField reports whether a filtered decision permits the named field.
func (d Decision) PermitsField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func allow() Decision {
	return Decision{Effect: EffectAllow}
}

func allowFiltered(fields []string) Decision {
	return Decision{Effect: EffectAllowFiltered, Fields: fields}
}

func deny(reason string) Decision {
	return Decision{Effect: EffectDeny, Reason: reason, err: apperrors.NewAuthorizationError(reason)}
}

// Scope narrows list and lookup queries to the records an actor may see.
// Repositories translate it into query filters, so out-of-scope records
// never surface in listings.
type Scope struct {
	// All grants global visibility (superadmin only).
	All bool
	// CompanyID restricts results to one tenant when non-empty.
	CompanyID string
	// OwnerID restricts results to records created by this user.
	OwnerID *uuid.UUID
	// RoleOnly restricts user listings to accounts with this role.
	RoleOnly Role
}
